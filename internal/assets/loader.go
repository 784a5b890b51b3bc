package assets

// AssetLoader loads CSS styles and HTML templates by name.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound when the style does not exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns ErrTemplateNotFound when the template does not exist.
	LoadTemplate(name string) (string, error)
}
