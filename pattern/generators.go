package pattern

import (
	"github.com/cpcf/loom/render"
	"github.com/cpcf/loom/value"
)

// base derives the keys every pattern shares. The project name's case
// variants are computed here, once per run, so every template referencing
// them sees byte-identical strings.
func base(d map[string]any, patternName string) map[string]value.Value {
	name := stringAt(d, "projectName", "untitled project")
	return map[string]value.Value{
		"pattern":           value.Str(patternName),
		"projectName":       value.Str(name),
		"projectNameKebab":  value.Str(render.KebabCase(name)),
		"projectNameSnake":  value.Str(render.SnakeCase(name)),
		"projectNamePascal": value.Str(render.PascalCase(name)),
		"projectNameCamel":  value.Str(render.CamelCase(name)),
		"description":       value.Str(stringAt(d, "description", "")),
		"version":           value.Str(stringAt(d, "version", "0.1.0")),
	}
}

// SimpleCRUD is the minimal pattern and the fallback for unknown names:
// plain entities, email auth, no realtime, storage only when asked for.
func SimpleCRUD(d map[string]any) map[string]value.Value {
	vars := base(d, "simple_crud")

	entities := stringsAt(d, "entities")
	if len(entities) == 0 {
		entities = []string{"item"}
	}
	models := make([]value.Value, 0, len(entities))
	components := make([]value.Value, 0, 2*len(entities))
	for _, entity := range entities {
		models = append(models, model(entity,
			fields(field("id", "string", true), field("name", "string", true), field("createdAt", "date", true)),
			relations()))
		pascal := render.PascalCase(entity)
		components = append(components, value.Str(pascal+"List"), value.Str(pascal+"Form"))
	}

	storageNeeded := boolAt(d, "fileUploads", false)
	vars["models"] = value.ListOf(models...)
	vars["auth"] = auth("email", nil, boolAt(d, "mfa", false))
	vars["storage"] = storage(storageNeeded, "local", nil)
	vars["uiComponents"] = value.ListOf(components...)
	vars["socialAuth"] = value.Bool(false)
	vars["realTimeSubscriptions"] = value.Bool(false)
	vars["storageNeeded"] = value.Bool(storageNeeded)
	return vars
}

func SocialPlatform(d map[string]any) map[string]value.Value {
	vars := base(d, "social_platform")

	providers := stringsAt(d, "socialProviders")
	if len(providers) == 0 {
		providers = []string{"google", "github"}
	}
	realtime := boolAt(d, "realtime", true)

	vars["models"] = value.ListOf(
		model("user",
			fields(field("id", "string", true), field("handle", "string", true),
				field("displayName", "string", true), field("avatarUrl", "string", false)),
			relations(rel("hasMany", "post"), rel("hasMany", "follow"))),
		model("post",
			fields(field("id", "string", true), field("body", "text", true),
				field("mediaUrl", "string", false), field("createdAt", "date", true)),
			relations(rel("belongsTo", "user"), rel("hasMany", "comment"))),
		model("comment",
			fields(field("id", "string", true), field("body", "text", true), field("createdAt", "date", true)),
			relations(rel("belongsTo", "post"), rel("belongsTo", "user"))),
		model("follow",
			fields(field("followerId", "string", true), field("followeeId", "string", true)),
			relations(rel("belongsTo", "user"))),
	)
	vars["auth"] = auth("social", providers, boolAt(d, "mfa", false))
	vars["storage"] = storage(true, stringAt(d, "storageProvider", "s3"), []string{"avatars", "media"})
	vars["uiComponents"] = strList("Feed", "Profile", "PostComposer", "CommentThread", "NotificationBell")
	vars["socialAuth"] = value.Bool(true)
	vars["realTimeSubscriptions"] = value.Bool(realtime)
	vars["storageNeeded"] = value.Bool(true)
	return vars
}

func ECommerce(d map[string]any) map[string]value.Value {
	vars := base(d, "e_commerce")

	vars["models"] = value.ListOf(
		model("product",
			fields(field("id", "string", true), field("title", "string", true),
				field("price", "number", true), field("imageUrl", "string", false)),
			relations(rel("belongsTo", "category"))),
		model("category",
			fields(field("id", "string", true), field("name", "string", true)),
			relations(rel("hasMany", "product"))),
		model("cart",
			fields(field("id", "string", true), field("items", "json", true)),
			relations(rel("belongsTo", "customer"))),
		model("order",
			fields(field("id", "string", true), field("total", "number", true),
				field("status", "string", true), field("placedAt", "date", true)),
			relations(rel("belongsTo", "customer"))),
		model("customer",
			fields(field("id", "string", true), field("email", "string", true)),
			relations(rel("hasMany", "order"))),
	)
	vars["auth"] = auth("email", nil, boolAt(d, "mfa", false))
	vars["storage"] = storage(true, stringAt(d, "storageProvider", "s3"), []string{"product-images"})
	vars["uiComponents"] = strList("ProductList", "ProductDetail", "Cart", "Checkout", "OrderHistory")
	vars["socialAuth"] = value.Bool(false)
	vars["realTimeSubscriptions"] = value.Bool(false)
	vars["storageNeeded"] = value.Bool(true)
	vars["payments"] = value.Bool(boolAt(d, "payments", true))
	vars["guestCheckout"] = value.Bool(boolAt(d, "guestCheckout", true))
	vars["currency"] = value.Str(stringAt(d, "currency", "usd"))
	return vars
}

func ContentManagement(d map[string]any) map[string]value.Value {
	vars := base(d, "content_management")

	roles := stringsAt(d, "roles")
	if len(roles) == 0 {
		roles = []string{"admin", "editor", "viewer"}
	}

	vars["models"] = value.ListOf(
		model("article",
			fields(field("id", "string", true), field("title", "string", true),
				field("body", "text", true), field("publishedAt", "date", false)),
			relations(rel("belongsTo", "category"), rel("belongsTo", "author"))),
		model("page",
			fields(field("id", "string", true), field("slug", "string", true), field("body", "text", true)),
			relations()),
		model("category",
			fields(field("id", "string", true), field("name", "string", true)),
			relations(rel("hasMany", "article"))),
		model("media",
			fields(field("id", "string", true), field("url", "string", true), field("mimeType", "string", true)),
			relations()),
	)
	vars["auth"] = auth("email", nil, boolAt(d, "mfa", true))
	vars["storage"] = storage(true, stringAt(d, "storageProvider", "s3"), []string{"uploads"})
	vars["uiComponents"] = strList("Editor", "MediaLibrary", "PageTree", "PublishQueue")
	vars["roles"] = strListOf(roles)
	vars["socialAuth"] = value.Bool(false)
	vars["realTimeSubscriptions"] = value.Bool(false)
	vars["storageNeeded"] = value.Bool(true)
	vars["drafts"] = value.Bool(boolAt(d, "drafts", true))
	return vars
}

func DashboardAnalytics(d map[string]any) map[string]value.Value {
	vars := base(d, "dashboard_analytics")

	realtime := boolAt(d, "realtime", true)
	exports := boolAt(d, "exports", false)

	vars["models"] = value.ListOf(
		model("datasource",
			fields(field("id", "string", true), field("name", "string", true), field("kind", "string", true)),
			relations(rel("hasMany", "metric"))),
		model("dashboard",
			fields(field("id", "string", true), field("title", "string", true), field("layout", "json", true)),
			relations(rel("hasMany", "widget"))),
		model("widget",
			fields(field("id", "string", true), field("chartType", "string", true), field("query", "text", true)),
			relations(rel("belongsTo", "dashboard"), rel("belongsTo", "metric"))),
		model("metric",
			fields(field("id", "string", true), field("name", "string", true), field("unit", "string", false)),
			relations(rel("belongsTo", "datasource"))),
	)
	vars["auth"] = auth("email", nil, boolAt(d, "mfa", false))
	vars["storage"] = storage(exports, "local", []string{"exports"})
	vars["uiComponents"] = strList("DashboardGrid", "ChartPanel", "FilterBar", "ExportButton")
	vars["socialAuth"] = value.Bool(false)
	vars["realTimeSubscriptions"] = value.Bool(realtime)
	vars["storageNeeded"] = value.Bool(exports)
	return vars
}

// --- descriptor constructors ---

func model(name string, fieldList, relList value.Value) value.Value {
	return value.MapOf(map[string]value.Value{
		"name":          value.Str(name),
		"namePascal":    value.Str(render.PascalCase(name)),
		"namePlural":    value.Str(render.Pluralize(name)),
		"fields":        fieldList,
		"relationships": relList,
	})
}

func field(name, typ string, required bool) value.Value {
	return value.MapOf(map[string]value.Value{
		"name":     value.Str(name),
		"type":     value.Str(typ),
		"required": value.Bool(required),
	})
}

func fields(items ...value.Value) value.Value { return value.ListOf(items...) }

func rel(kind, target string) value.Value {
	return value.MapOf(map[string]value.Value{
		"kind":   value.Str(kind),
		"target": value.Str(target),
	})
}

func relations(items ...value.Value) value.Value { return value.ListOf(items...) }

func auth(strategy string, providers []string, mfa bool) value.Value {
	return value.MapOf(map[string]value.Value{
		"strategy":  value.Str(strategy),
		"providers": strListOf(providers),
		"mfa":       value.Bool(mfa),
	})
}

func storage(needed bool, provider string, buckets []string) value.Value {
	return value.MapOf(map[string]value.Value{
		"needed":   value.Bool(needed),
		"provider": value.Str(provider),
		"buckets":  strListOf(buckets),
	})
}

func strList(items ...string) value.Value { return strListOf(items) }

func strListOf(items []string) value.Value {
	values := make([]value.Value, len(items))
	for i, item := range items {
		values[i] = value.Str(item)
	}
	return value.ListOf(values...)
}

// --- decision destructuring ---
//
// Decisions come from an external collaborator and carry no schema
// guarantees; every accessor tolerates missing keys and wrong types.

func stringAt(d map[string]any, key, fallback string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func boolAt(d map[string]any, key string, fallback bool) bool {
	if v, ok := d[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

func stringsAt(d map[string]any, key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		out := make([]string, len(items))
		copy(out, items)
		return out
	case []any:
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
