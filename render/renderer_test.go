package render

import (
	"errors"
	"testing"

	"github.com/cpcf/loom/template"
	"github.com/cpcf/loom/value"
)

func mustParse(t *testing.T, source string) *template.AST {
	t.Helper()
	ast, err := template.NewParser(Defaults()).Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return ast
}

func testScope() *value.Scope {
	return value.RootScope(value.NewContext(map[string]value.Value{
		"projectName": value.Str("My Task App"),
		"flag":        value.Bool(true),
		"models": value.ListOf(
			value.MapOf(map[string]value.Value{
				"name":   value.Str("user"),
				"fields": value.ListOf(value.Str("id"), value.Str("email")),
			}),
			value.MapOf(map[string]value.Value{
				"name":   value.Str("post"),
				"fields": value.ListOf(value.Str("id")),
			}),
		),
		"flags": value.MapOf(map[string]value.Value{
			"socialAuth": value.Bool(true),
			"payments":   value.Bool(false),
		}),
	}))
}

func renderString(t *testing.T, source string, mode Mode) (string, error) {
	t.Helper()
	return NewRenderer(Defaults()).Render(mustParse(t, source), testScope(), mode)
}

func TestInterpolation(t *testing.T) {
	got, err := renderString(t, "project: {{projectName}}", Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "project: My Task App" {
		t.Errorf("got %q", got)
	}
}

func TestHelperChainAppliesRightToLeft(t *testing.T) {
	// kebabcase runs first (adjacent to the path), uppercase last.
	got, err := renderString(t, "{{ uppercase kebabcase projectName }}", Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "MY-TASK-APP" {
		t.Errorf("got %q, want %q", got, "MY-TASK-APP")
	}
}

func TestMissingVariable(t *testing.T) {
	t.Run("strict fails", func(t *testing.T) {
		_, err := renderString(t, "{{nope}}", Strict)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("error = %v, want *Error", err)
		}
		if re.Kind != MissingVariable {
			t.Errorf("kind = %s, want %s", re.Kind, MissingVariable)
		}
		if re.Path != "nope" {
			t.Errorf("path = %q, want %q", re.Path, "nope")
		}
	})

	t.Run("lenient substitutes empty", func(t *testing.T) {
		got, err := renderString(t, "[{{nope}}]", Lenient)
		if err != nil {
			t.Fatal(err)
		}
		if got != "[]" {
			t.Errorf("got %q, want %q", got, "[]")
		}
	})
}

func TestIfElseOverFalsySet(t *testing.T) {
	falsy := map[string]value.Value{
		"false":        value.Bool(false),
		"zero":         value.Num(0),
		"empty string": value.Str(""),
		"empty list":   value.ListOf(),
		"empty map":    value.MapOf(nil),
	}

	ast := mustParse(t, "{{#if x}}A{{else}}B{{/if}}")
	r := NewRenderer(Defaults())

	for name, v := range falsy {
		t.Run(name, func(t *testing.T) {
			scope := value.RootScope(value.NewContext(map[string]value.Value{"x": v}))
			got, err := r.Render(ast, scope, Strict)
			if err != nil {
				t.Fatal(err)
			}
			if got != "B" {
				t.Errorf("falsy %s rendered %q, want B", name, got)
			}
		})
	}

	truthy := map[string]value.Value{
		"true":   value.Bool(true),
		"number": value.Num(2),
		"string": value.Str("x"),
		"list":   value.ListOf(value.Num(1)),
		"map":    value.MapOf(map[string]value.Value{"k": value.Num(1)}),
	}
	for name, v := range truthy {
		t.Run(name, func(t *testing.T) {
			scope := value.RootScope(value.NewContext(map[string]value.Value{"x": v}))
			got, err := r.Render(ast, scope, Strict)
			if err != nil {
				t.Fatal(err)
			}
			if got != "A" {
				t.Errorf("truthy %s rendered %q, want A", name, got)
			}
		})
	}
}

func TestAbsentConditionIsFalsy(t *testing.T) {
	// Conditions never raise MissingVariable, even in strict mode.
	got, err := renderString(t, "{{#if absent}}A{{else}}B{{/if}}", Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "B" {
		t.Errorf("got %q, want B", got)
	}
}

func TestUnless(t *testing.T) {
	got, err := renderString(t, "{{#unless flag}}hidden{{else}}shown{{/unless}}", Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "shown" {
		t.Errorf("got %q, want %q", got, "shown")
	}
}

func TestEachList(t *testing.T) {
	source := "{{#each models}}{{@index}}:{{this.name}}{{#unless @last}},{{/unless}}{{/each}}"
	got, err := renderString(t, source, Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0:user,1:post" {
		t.Errorf("got %q, want %q", got, "0:user,1:post")
	}
}

func TestEachMapSortedByKey(t *testing.T) {
	source := "{{#each flags}}{{@key}}={{this}};{{/each}}"
	got, err := renderString(t, source, Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "payments=false;socialAuth=true;" {
		t.Errorf("got %q", got)
	}
}

func TestNestedEachScoping(t *testing.T) {
	// Inner this/@index reflect only the innermost collection; the named
	// outer path resolves unchanged from inside.
	source := "{{#each models}}{{this.name}}[{{#each this.fields}}{{@index}}{{this}} {{projectName}}|{{/each}}]{{/each}}"
	got, err := renderString(t, source, Strict)
	if err != nil {
		t.Fatal(err)
	}
	want := "user[0id My Task App|1email My Task App|]post[0id My Task App|]"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestEachErrors(t *testing.T) {
	t.Run("scalar collection", func(t *testing.T) {
		_, err := renderString(t, "{{#each projectName}}x{{/each}}", Strict)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("error = %v, want *Error", err)
		}
		if re.Kind != CollectionExpected {
			t.Errorf("kind = %s, want %s", re.Kind, CollectionExpected)
		}
	})

	t.Run("absent collection strict", func(t *testing.T) {
		_, err := renderString(t, "{{#each absent}}x{{/each}}", Strict)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("error = %v, want *Error", err)
		}
		if re.Kind != MissingVariable {
			t.Errorf("kind = %s, want %s", re.Kind, MissingVariable)
		}
	})

	t.Run("absent collection lenient", func(t *testing.T) {
		got, err := renderString(t, "[{{#each absent}}x{{/each}}]", Lenient)
		if err != nil {
			t.Fatal(err)
		}
		if got != "[]" {
			t.Errorf("got %q, want %q", got, "[]")
		}
	})
}

func TestHelperErrors(t *testing.T) {
	t.Run("type mismatch", func(t *testing.T) {
		_, err := renderString(t, "{{ uppercase models }}", Strict)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("error = %v, want *Error", err)
		}
		if re.Kind != TypeMismatch {
			t.Errorf("kind = %s, want %s", re.Kind, TypeMismatch)
		}
		if re.Path != "models" {
			t.Errorf("path = %q, want %q", re.Path, "models")
		}
	})

	t.Run("arity error", func(t *testing.T) {
		helpers := Defaults()
		helpers.Register(Helper{
			Name:  "join",
			Arity: 2,
			Fn: func(v value.Value) (value.Value, error) {
				return v, nil
			},
		})
		ast, err := template.NewParser(helpers).Parse("{{ join projectName }}")
		if err != nil {
			t.Fatal(err)
		}
		_, err = NewRenderer(helpers).Render(ast, testScope(), Strict)
		var re *Error
		if !errors.As(err, &re) {
			t.Fatalf("error = %v, want *Error", err)
		}
		if re.Kind != HelperArityError {
			t.Errorf("kind = %s, want %s", re.Kind, HelperArityError)
		}
	})
}

func TestLengthHelper(t *testing.T) {
	got, err := renderString(t, "{{ length models }}", Strict)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2" {
		t.Errorf("got %q, want %q", got, "2")
	}
}

func TestRenderDeterminism(t *testing.T) {
	source := "{{#each flags}}{{@key}}={{this}};{{/each}}{{#each models}}{{ pascalcase this.name }}{{/each}}"
	ast := mustParse(t, source)
	r := NewRenderer(Defaults())
	scope := testScope()

	first, err := r.Render(ast, scope, Strict)
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 50; n++ {
		again, err := r.Render(ast, scope, Strict)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("render output changed between runs:\n%q\n%q", first, again)
		}
	}
}
