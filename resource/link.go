package resource

// Link is a hyperlink to a URI or URI template. The relation a link plays is not part of the link
// itself; it's the name the link is stored under.
type Link struct {
	href      string
	name      string
	lang      string
	title     string
	templated bool
}

// NewLink creates a link to href. The href can't be changed afterwards.
func NewLink(href string) *Link {
	return &Link{
		href: href,
	}
}

// Href returns the link's target URI or URI template.
func (l *Link) Href() string {
	return l.href
}

// SetName sets a secondary key for selecting between links that share a relation.
func (l *Link) SetName(name string) *Link {
	l.name = name
	return l
}

// Name returns the link's name, or an empty string if it has none.
func (l *Link) Name() string {
	return l.name
}

// SetLang sets the language of the link's target.
func (l *Link) SetLang(lang string) *Link {
	l.lang = lang
	return l
}

// Lang returns the language of the link's target.
func (l *Link) Lang() string {
	return l.lang
}

// SetTitle sets a human-readable label for the link.
func (l *Link) SetTitle(title string) *Link {
	l.title = title
	return l
}

// Title returns the link's human-readable label.
func (l *Link) Title() string {
	return l.title
}

// SetTemplated marks the href as a URI template (RFC 6570).
func (l *Link) SetTemplated(templated bool) *Link {
	l.templated = templated
	return l
}

// Templated reports whether the href is a URI template.
func (l *Link) Templated() bool {
	return l.templated
}

// Map returns the link as a link object: href first, followed by whichever of name, lang, title,
// and templated are set.
func (l *Link) Map() *OrderedMap {
	ret := MapOf("href", l.href)
	if l.name != "" {
		ret.Set("name", l.name)
	}
	if l.lang != "" {
		ret.Set("lang", l.lang)
	}
	if l.title != "" {
		ret.Set("title", l.title)
	}
	if l.templated {
		ret.Set("templated", true)
	}
	return ret
}
