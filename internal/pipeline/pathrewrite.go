package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImagePaths turns relative img[src] values into absolute file:// URLs
// resolved against baseDir. The document is rendered from a temp file, so a
// relative cover logo would otherwise not load. An empty baseDir is a no-op.
//
// URLs, data URIs, anchors, absolute paths and paths escaping baseDir are
// left untouched.
func RewriteImagePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	changed := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			for i, attr := range n.Attr {
				if attr.Key != "src" || !isRelativePath(attr.Val) {
					continue
				}
				abs := filepath.Join(absBase, filepath.FromSlash(attr.Val))
				if !isPathUnderDir(abs, absBase) {
					continue
				}
				n.Attr[i].Val = pathToFileURL(abs)
				changed = true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// Rendering normalizes markup; skip it when nothing was rewritten.
	if !changed {
		return htmlContent, nil
	}

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// isRelativePath reports whether a src value is a local relative path.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		// http:, https:, file:, data:, and Windows drive letters alike.
		return len(u.Scheme) == 1 && filepath.VolumeName(p) != ""
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

// isPathUnderDir reports whether path is dir itself or below it.
func isPathUnderDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/docs -> /C:/docs
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
