package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cpcf/loom/assemble"
	"github.com/cpcf/loom/pattern"
	"github.com/cpcf/loom/processors"
	"github.com/cpcf/loom/render"
)

func taskAppConfig() pattern.Config {
	return pattern.Config{
		Name:      "simple_crud",
		Decisions: map[string]any{"projectName": "My Task App"},
	}
}

func TestGenerateProject(t *testing.T) {
	eng := New()
	set := assemble.Set{
		assemble.NewEntry("package.json", "package.json",
			"{\"name\": \"{{projectNameKebab}}\", \"version\": \"{{version}}\"}"),
		assemble.NewEntry("readme", "README.md", "# {{projectName}}\n"),
		assemble.NewEntry("models", "src/models.ts",
			"{{#each models}}export interface {{this.namePascal}} {}\n{{/each}}"),
	}

	files, err := eng.Generate(context.Background(), taskAppConfig(), set)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}

	if !strings.Contains(files[0].Content, `"name": "my-task-app"`) {
		t.Errorf("package.json = %q", files[0].Content)
	}
	if files[1].Content != "# My Task App\n" {
		t.Errorf("README = %q", files[1].Content)
	}
	if !strings.Contains(files[2].Content, "export interface Item {}") {
		t.Errorf("models = %q", files[2].Content)
	}
}

func TestGenerateConditionalFile(t *testing.T) {
	eng := New()
	set := assemble.Set{
		assemble.NewEntry("storage", "{{#if storageNeeded}}src/storage.ts{{/if}}", "export const storage = {}\n"),
	}

	// simple_crud without fileUploads has no storage.
	files, err := eng.Generate(context.Background(), taskAppConfig(), set)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("got %d files, want 0", len(files))
	}

	// social_platform always needs storage.
	files, err = eng.Generate(context.Background(), pattern.Config{Name: "social_platform"}, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "src/storage.ts" {
		t.Fatalf("files = %v, want src/storage.ts", files)
	}
}

func TestGenerateUnknownPatternFallsBack(t *testing.T) {
	eng := New()
	set := assemble.Set{
		assemble.NewEntry("pkg", "package.json", `{"name": "{{projectNameKebab}}"}`),
	}

	files, err := eng.Generate(context.Background(), pattern.Config{
		Name:      "unknown_xyz",
		Decisions: map[string]any{"projectName": "Demo"},
	}, set)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(files[0].Content, `"name": "demo"`) {
		t.Errorf("content = %q", files[0].Content)
	}
}

func TestGenerateFailureReturnsReport(t *testing.T) {
	eng := New()
	set := assemble.Set{
		assemble.NewEntry("bad", "a.txt", "{{#if a}}text{{/each}}"),
	}

	files, err := eng.Generate(context.Background(), taskAppConfig(), set)
	if files != nil {
		t.Fatal("failing run produced files")
	}
	var report *assemble.Report
	if !errors.As(err, &report) {
		t.Fatalf("error = %T, want *assemble.Report", err)
	}
}

func TestGeneratePostProcessing(t *testing.T) {
	eng := New()
	eng.AddPostProcessor(processors.NewJSONFormat())
	eng.AddPostProcessor(processors.NewFinalNewline())

	set := assemble.Set{
		assemble.NewEntry("pkg", "package.json", `{"name":"{{projectNameKebab}}"}`),
		assemble.NewEntry("readme", "README.md", "# {{projectName}}"),
	}

	files, err := eng.Generate(context.Background(), taskAppConfig(), set)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"name\": \"my-task-app\"\n}\n"
	if files[0].Content != want {
		t.Errorf("package.json = %q, want %q", files[0].Content, want)
	}
	if files[1].Content != "# My Task App\n" {
		t.Errorf("README = %q", files[1].Content)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	eng := New(WithWorkers(4))
	set := assemble.Set{
		assemble.NewEntry("pkg", "package.json", `{"name": "{{projectNameKebab}}"}`),
		assemble.NewEntry("models", "src/models.ts",
			"{{#each models}}{{this.name}}:{{#each this.fields}}{{this.name}},{{/each}};{{/each}}"),
		assemble.NewEntry("auth", "src/auth.ts", "{{#each auth}}{{@key}} {{/each}}"),
	}
	cfg := pattern.Config{Name: "social_platform", Decisions: map[string]any{"projectName": "chirper"}}

	first, err := eng.Generate(context.Background(), cfg, set)
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 10; n++ {
		again, err := eng.Generate(context.Background(), cfg, set)
		if err != nil {
			t.Fatal(err)
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("file %d differs between runs", i)
			}
		}
	}
}

func TestParseAll(t *testing.T) {
	eng := New()
	set := assemble.Set{
		assemble.NewEntry("good", "a.txt", "fine"),
		assemble.NewEntry("bad-body", "b.txt", "{{#if x}}unclosed"),
		assemble.NewEntry("bad-path", "{{#each}}", "fine"),
	}

	err := eng.ParseAll(set)
	var report *assemble.Report
	if !errors.As(err, &report) {
		t.Fatalf("error = %T, want *assemble.Report", err)
	}
	if len(report.Failures) != 2 {
		t.Errorf("got %d failures, want 2:\n%v", len(report.Failures), report)
	}

	if err := eng.ParseAll(assemble.Set{assemble.NewEntry("ok", "a.txt", "{{projectName}}")}); err != nil {
		t.Errorf("clean set reported %v", err)
	}
}

func TestPreviewIsLenient(t *testing.T) {
	eng := New()
	got, err := eng.Preview(taskAppConfig(), "{{projectNameKebab}} [{{not.a.thing}}]")
	if err != nil {
		t.Fatal(err)
	}
	if got != "my-task-app []" {
		t.Errorf("got %q", got)
	}
}

func TestWithMode(t *testing.T) {
	eng := New(WithMode(render.Lenient))
	set := assemble.Set{assemble.NewEntry("f", "out.txt", "[{{missing}}]")}

	files, err := eng.Generate(context.Background(), taskAppConfig(), set)
	if err != nil {
		t.Fatal(err)
	}
	if files[0].Content != "[]" {
		t.Errorf("content = %q, want %q", files[0].Content, "[]")
	}
}
