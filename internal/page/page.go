// Package page assembles the standalone web page that shows an overlay.
package page

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magcot/magcot/internal/export/document"
	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/texture"

	"golang.org/x/text/language"
)

//go:embed assets
var assets embed.FS

const (
	sourcesDir = "assets/sources"
	// FragmentIndent is the depth the overlay fragment is written at.
	FragmentIndent = 4
	// DefaultLang is the dictionary used when none is configured.
	DefaultLang = "zh_cn"
)

var scripts = []string{"arrangement", "interaction"}

// Options control how the page is assembled.
type Options struct {
	// Embed inlines the style sheet, scripts and icon. Otherwise they are
	// linked from a "sources" folder next to the page.
	Embed bool
	Lang  string
}

// DefaultOptions embeds everything with the default dictionary.
func DefaultOptions() Options {
	return Options{Embed: true, Lang: DefaultLang}
}

// Languages lists the available dictionaries.
func Languages() []string {
	entries, _ := assets.ReadDir("assets/lang")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(langs)
	return langs
}

// ResolveLang matches a requested language, such as "zh_cn", "zh-Hans" or
// "en", against the available dictionaries.
func ResolveLang(lang string) (string, language.Tag, error) {
	requested, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return "", language.Und, fmt.Errorf("%w: language %q: %v", core.ErrValidation, lang, err)
	}
	available := Languages()
	tags := make([]language.Tag, len(available))
	for i, name := range available {
		tags[i] = language.Make(strings.ReplaceAll(name, "_", "-"))
	}
	_, index, confidence := language.NewMatcher(tags).Match(requested)
	if confidence == language.No {
		return "", language.Und, &core.NotFoundError{What: "language file", Key: lang + ".json"}
	}
	return available[index], tags[index], nil
}

// Assemble fills the page frame. fragment is the overlay, already indented
// by FragmentIndent.
func Assemble(fragment string, opts Options) (string, error) {
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	name, tag, err := ResolveLang(opts.Lang)
	if err != nil {
		return "", err
	}
	dict, err := langDict(name)
	if err != nil {
		return "", err
	}
	frame, err := assets.ReadFile("assets/frame.html")
	if err != nil {
		return "", err
	}

	var stylesheet, scriptTags, icon string
	if opts.Embed {
		css, err := assets.ReadFile(path.Join(sourcesDir, "magcotstyle.css"))
		if err != nil {
			return "", err
		}
		stylesheet = "<style type=\"text/css\">\n" + indentLines(string(css), "\t\t") + "\n\t</style>"

		tags := make([]string, 0, len(scripts))
		for _, js := range scripts {
			src, err := assets.ReadFile(path.Join(sourcesDir, js+".js"))
			if err != nil {
				return "", err
			}
			tags = append(tags, "<script type=\"text/javascript\">\n"+indentLines(string(src), "\t\t")+"\n\t</script>")
		}
		scriptTags = strings.Join(tags, "\n\t")

		png, err := assets.ReadFile(path.Join(sourcesDir, "icon.png"))
		if err != nil {
			return "", err
		}
		icon = texture.DataURL(png)
	} else {
		stylesheet = `<link rel="stylesheet" type="text/css" href="./sources/magcotstyle.css">`
		tags := make([]string, 0, len(scripts))
		for _, js := range scripts {
			tags = append(tags, fmt.Sprintf(`<script type="text/javascript" src="./sources/%s.js"></script>`, js))
		}
		scriptTags = strings.Join(tags, "\n\t")
		icon = "./sources/icon.png"
	}

	page := strings.NewReplacer(
		"$htmllang$", tag.String(),
		"$stylesheet$", stylesheet,
		"$langdict$", dict,
		"$scripts$", scriptTags,
		"$iconsrc$", icon,
		"$elements$", fragment,
	).Replace(string(frame))
	return page, nil
}

// langDict renders the dictionary name as a script block, keeping the
// order of the file.
func langDict(name string) (string, error) {
	data, err := assets.ReadFile("assets/lang/" + name + ".json")
	if err != nil {
		return "", &core.NotFoundError{What: "language file", Key: name + ".json"}
	}
	var entries document.Object
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", fmt.Errorf("language file %s.json: %w", name, err)
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		value, err := json.Marshal(e.Value)
		if err != nil {
			return "", err
		}
		key, _ := json.Marshal(e.Key)
		lines = append(lines, fmt.Sprintf("%s: %s,", key, value))
	}
	return "<script type=\"text/javascript\">\n\t\tlangEntries = {\n\t\t\t" +
		strings.Join(lines, "\n\t\t\t") + "\n\t\t}\n\t</script>", nil
}

// WriteSources copies the style sheet, scripts and icon into
// dir/sources, as linked pages need them.
func WriteSources(dir string) error {
	dest := filepath.Join(dir, "sources")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	return fs.WalkDir(assets, sourcesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := assets.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dest, d.Name()), data, 0o644)
	})
}

// Write assembles the page into file, copying the linked sources next to
// it when they are not embedded.
func Write(file, fragment string, opts Options) error {
	html, err := Assemble(fragment, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(file), err)
	}
	if !opts.Embed {
		if err := WriteSources(filepath.Dir(file)); err != nil {
			return err
		}
	}
	return os.WriteFile(file, []byte(html), 0o644)
}

func indentLines(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
