package template

import "sync"

// Template pairs source text with its lazily parsed AST. Parsing is pure, so
// the result of the first Parse call is cached (error included) and reused
// across every subsequent render.
type Template struct {
	Source string

	once sync.Once
	ast  *AST
	err  error
}

func New(source string) *Template {
	return &Template{Source: source}
}

// Parse returns the cached AST, parsing on first use.
func (t *Template) Parse(p *Parser) (*AST, error) {
	t.once.Do(func() {
		t.ast, t.err = p.Parse(t.Source)
	})
	return t.ast, t.err
}

// Cache deduplicates templates by source text so identical templates across
// a set share one parsed AST. Safe for concurrent use.
type Cache struct {
	mu        sync.RWMutex
	parser    *Parser
	templates map[string]*Template
}

func NewCache(parser *Parser) *Cache {
	return &Cache{
		parser:    parser,
		templates: make(map[string]*Template),
	}
}

// Get returns the AST for source, parsing and caching it on first use.
func (c *Cache) Get(source string) (*AST, error) {
	c.mu.RLock()
	tmpl, exists := c.templates[source]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		tmpl, exists = c.templates[source]
		if !exists {
			tmpl = New(source)
			c.templates[source] = tmpl
		}
		c.mu.Unlock()
	}

	return tmpl.Parse(c.parser)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]*Template)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}
