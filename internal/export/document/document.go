package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/texture"
)

// Source is the read-only view of a session the document is built from.
// Every listing is in registration order.
type Source interface {
	TextureNames() []string
	Texture(name string) (*texture.Texture, bool)
	GroupNames() []string
	GroupMembers(name string) []string
	Elements() []element.Element
}

// Document is the structured export of a session.
type Document struct {
	// Textures maps texture names to their preferred paths.
	Textures Object
	// Groups maps group names to element ids ([]string).
	Groups Object
	// Elements holds one object per element.
	Elements []Object
}

// Build collects the document of src.
func Build(src Source) (*Document, error) {
	doc := &Document{Textures: Object{}, Groups: Object{}, Elements: []Object{}}
	for _, name := range src.TextureNames() {
		tex, _ := src.Texture(name)
		doc.Textures = append(doc.Textures, Field{Key: name, Value: tex.PreferredPath()})
	}
	for _, name := range src.GroupNames() {
		members := append([]string{}, src.GroupMembers(name)...)
		doc.Groups = append(doc.Groups, Field{Key: name, Value: members})
	}
	for _, el := range src.Elements() {
		obj, err := Element(el)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", el.ID(), err)
		}
		doc.Elements = append(doc.Elements, obj)
	}
	return doc, nil
}

func (d *Document) object() Object {
	elements := d.Elements
	if elements == nil {
		elements = []Object{}
	}
	return Object{
		{Key: "textures", Value: orEmpty(d.Textures)},
		{Key: "groups", Value: orEmpty(d.Groups)},
		{Key: "elements", Value: elements},
	}
}

func orEmpty(o Object) Object {
	if o == nil {
		return Object{}
	}
	return o
}

// MarshalJSON writes "textures", "groups" and "elements" in that order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.object().MarshalJSON()
}

// UnmarshalJSON reads a document, keeping the order of textures and groups.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Textures Object            `json:"textures"`
		Groups   Object            `json:"groups"`
		Elements []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Textures = raw.Textures
	d.Groups = raw.Groups
	d.Elements = make([]Object, 0, len(raw.Elements))
	for i, msg := range raw.Elements {
		var obj Object
		if err := json.Unmarshal(msg, &obj); err != nil {
			return fmt.Errorf("element #%d: %w", i, err)
		}
		d.Elements = append(d.Elements, obj)
	}
	return nil
}

// TexturePaths returns the texture names and paths in order.
func (d *Document) TexturePaths() ([]string, map[string]string, error) {
	names := d.Textures.Keys()
	paths := make(map[string]string, len(names))
	for _, f := range d.Textures {
		p, ok := f.Value.(string)
		if !ok {
			return nil, nil, fmt.Errorf("texture %q: path must be a string", f.Key)
		}
		paths[f.Key] = p
	}
	return names, paths, nil
}

// GroupMembers returns the group names in order and the ids of each group.
func (d *Document) GroupMembers() ([]string, map[string][]string, error) {
	names := d.Groups.Keys()
	members := make(map[string][]string, len(names))
	for _, f := range d.Groups {
		switch ids := f.Value.(type) {
		case []string:
			members[f.Key] = ids
		case []any:
			list := make([]string, 0, len(ids))
			for _, id := range ids {
				s, ok := id.(string)
				if !ok {
					return nil, nil, fmt.Errorf("group %q: ids must be strings", f.Key)
				}
				list = append(list, s)
			}
			members[f.Key] = list
		default:
			return nil, nil, fmt.Errorf("group %q: expected a list of ids", f.Key)
		}
	}
	return names, members, nil
}

// Write encodes the document with tab indentation and without HTML
// escaping.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}

// Read decodes a document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}
