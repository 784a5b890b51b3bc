package assets

// Names of the built-in assets.
const (
	DefaultStyleName = "default"
	CoverTemplate    = "cover"
)

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name (without extension).
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name (without extension).
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
