package annotation

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/magcot/magcot/internal/export/document"
	"github.com/magcot/magcot/internal/testutil"
	"github.com/magcot/magcot/pkg/core"
	"github.com/magcot/magcot/pkg/element"
	"github.com/magcot/magcot/pkg/resource"
	"github.com/magcot/magcot/pkg/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, opts ...Option) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	main := testutil.WritePNG(t, dir, "main.png", 176, 166)
	s, err := NewFromPath(main, opts...)
	require.NoError(t, err)
	return s, dir
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		require.NoError(t, err)
		return v
	}
}

func TestDocument_RectangleInGroup(t *testing.T) {
	s, dir := startSession(t)
	require.NoError(t, s.SwitchGroup("g1"))
	require.NoError(t, s.Annotate(must[*element.Rectangle](t)(
		element.NewRectangle("r1", core.C(5, 5), core.C(20, 10)))))

	doc, err := s.Document()
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	mainPath := filepath.ToSlash(filepath.Join(dir, "main.png"))
	assert.JSONEq(t, `{
		"textures": {"": "`+mainPath+`"},
		"groups": {"g1": ["r1"]},
		"elements": [{"type": "rectangle", "name": "r1", "ul": [5, 5], "size": [20, 10]}]
	}`, string(data))
}

func TestAnnotate_DuplicateID(t *testing.T) {
	s, _ := startSession(t)
	require.NoError(t, s.Annotate(must[*element.Corner](t)(element.NewCorner("a", core.C(0, 0)))))

	require.NoError(t, s.SwitchGroup("other"))
	err := s.Annotate(must[*element.Corner](t)(element.NewCorner("a", core.C(1, 1))))
	var dup *core.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.GroupMembers("other"))

	s2, _ := startSession(t)
	require.NoError(t, s2.Annotate(must[*element.Corner](t)(element.NewCorner("a", core.C(0, 0)))))
}

func TestAddTexture(t *testing.T) {
	s, dir := startSession(t)
	icons := testutil.WritePNG(t, dir, "icons.png", 32, 32)

	require.NoError(t, s.AddTexturePath(icons, "icons"))
	assert.Equal(t, []string{"", "icons"}, s.TextureNames())
	tex, ok := s.Texture("icons")
	require.True(t, ok)
	name, bound := tex.Shortcut()
	assert.True(t, bound)
	assert.Equal(t, "icons", name)

	var dupName *core.DuplicateNameError
	require.ErrorAs(t, s.AddTexturePath(icons, "icons"), &dupName)

	err := s.AddTexturePath(filepath.Join(dir, "missing.png"), "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
	_, ok = s.Texture("missing")
	assert.False(t, ok)

	// a texture keeps the first name it was registered under
	err = s.AddTexture(tex, "again")
	require.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, []string{"", "icons"}, s.TextureNames())
}

func TestGroups(t *testing.T) {
	s, _ := startSession(t)
	corner := func(id string) element.Element {
		return must[*element.Corner](t)(element.NewCorner(id, core.C(0, 0)))
	}

	require.NoError(t, s.SwitchGroup("inputs"))
	require.NoError(t, s.Annotate(corner("a")))
	require.NoError(t, s.SwitchGroup("outputs"))
	require.NoError(t, s.Annotate(corner("b")))
	s.ClearGroup()
	require.NoError(t, s.Annotate(corner("c")))
	require.NoError(t, s.SwitchGroup("inputs"))
	require.NoError(t, s.Annotate(corner("d")))

	assert.Equal(t, []string{"inputs", "outputs"}, s.GroupNames())
	assert.Equal(t, []string{"a", "d"}, s.GroupMembers("inputs"))
	assert.Len(t, s.Ungrouped(), 1)
	assert.Equal(t, "c", s.Ungrouped()[0].ID())

	group, err := s.LookupGroup("#inputs")
	require.NoError(t, err)
	require.Len(t, group, 2)
	assert.Equal(t, "d", group[1].ID())

	el, err := s.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, "b", el.ID())

	_, err = s.Lookup("zzz")
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.LookupGroup("#zzz")
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.LookupGroup("inputs")
	require.ErrorIs(t, err, core.ErrValidation)
	require.ErrorIs(t, s.SwitchGroup("bad name"), core.ErrValidation)
}

func populate(t *testing.T, s *Session, dir string) {
	t.Helper()
	require.NoError(t, s.AddTexturePath(testutil.WritePNG(t, dir, "icons.png", 32, 32), "icons"))

	require.NoError(t, s.SwitchGroup("slots"))
	require.NoError(t, s.AnnotateAll(
		must[*element.ItemSlot](t)(element.NewItemSlot("slot1", core.C(10, 20))),
		must[*element.ItemSlot](t)(element.NewItemSlot("slot2", core.C(28, 20))),
	))
	require.NoError(t, s.SwitchGroup("bars"))
	require.NoError(t, s.AnnotateAll(
		must[*element.FluidTank](t)(element.NewFluidTank("tank", core.C(0, 0), core.C(10, 40), "+y")),
		must[*element.ProgressBar](t)(element.NewProgressBar("progress_bar", core.C(79, 34), core.C(24, 17), "+x", s.Context())),
	))
	s.ClearGroup()
	require.NoError(t, s.AnnotateAll(
		must[*element.Corner](t)(element.NewCorner("origin", core.C(0, 0))),
		must[*element.Rectangle](t)(element.NewRectangle("frame", core.C(1, 1), core.C(100, 50))),
		must[*element.Crop](t)(element.NewCrop("arrow", core.C(176, 14), core.C(24, 17), s.Context())),
		must[*element.Atlas](t)(element.NewAtlas("icon_grid", core.C(0, 0), core.C(2, 2), core.C(16, 16),
			s.Context(), element.WithTexture(element.TextureNamed("icons")))),
	))
}

func TestRoundTrip(t *testing.T) {
	s, dir := startSession(t)
	populate(t, s, dir)

	var buf bytes.Buffer
	require.NoError(t, s.EncodeDocument(&buf))

	restored, err := ReadDocument(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var again bytes.Buffer
	require.NoError(t, restored.EncodeDocument(&again))
	assert.Equal(t, buf.String(), again.String())

	original := s.Elements()
	for i, el := range restored.Elements() {
		want, err := document.Element(original[i])
		require.NoError(t, err)
		got, err := document.Element(el)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, s.GroupNames(), restored.GroupNames())
	assert.Equal(t, s.GroupMembers("bars"), restored.GroupMembers("bars"))
	assert.Len(t, restored.Ungrouped(), 4)
}

func TestFromDocument_NeedsMainTexture(t *testing.T) {
	_, err := FromDocument(&Document{})
	require.ErrorIs(t, err, core.ErrValidation)
}

func TestStatements(t *testing.T) {
	s, dir := startSession(t)
	populate(t, s, dir)

	out, err := s.Statements(ByKind)
	require.NoError(t, err)
	assert.Contains(t, out, "// Rect\nprivate static final Rect slot1 = new Rect(10, 20, 16, 16);\n")
	assert.Contains(t, out, "private static final TexturedUV progressBar = new TexturedUV(\n\t"+
		`textures.get(""), 79, 34, 24, 17, 176, 166);`)
	assert.Contains(t, out, `textures.get("icons"), 0, 0, 32, 32, 2, 4, 32, 32);`)

	_, err = s.Statements("shuffled")
	require.ErrorIs(t, err, core.ErrValidation)
}

var markerPattern = regexp.MustCompile(`data='\{"z_index":(\d+),[^']*'>([^<]+)</div>`)

func TestMarkup_IncreasingZAndFreshOrdinals(t *testing.T) {
	s, _ := startSession(t, WithOrdinalStyle("latin"))
	for i := 0; i < 40; i++ {
		require.NoError(t, s.Annotate(must[*element.Corner](t)(
			element.NewCorner("c"+strconv.Itoa(i), core.C(i, i)))))
	}

	out, err := s.Markup(Groupwise, 0)
	require.NoError(t, err)

	matches := markerPattern.FindAllStringSubmatch(out, -1)
	require.Len(t, matches, 40)
	seen := map[string]bool{}
	last := -1
	for _, m := range matches {
		z, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.Greater(t, z, last)
		last = z
		assert.False(t, seen[m[2]], "symbol %s reused", m[2])
		seen[m[2]] = true
	}
}

func TestMarkup_Options(t *testing.T) {
	s, _ := startSession(t, WithZIndex(1000, 500), WithElementStep(100), WithColorSeed(5))
	require.NoError(t, s.Annotate(must[*element.ItemSlot](t)(element.NewItemSlot("slot", core.C(0, 0)))))

	out, err := s.Markup(Order, 2)
	require.NoError(t, err)
	assert.Contains(t, out, `data='{"z_index":600,"suffix":"area"`)
	assert.Contains(t, out, `data='{"z_index":1101,"suffix":"ul"`)
	assert.True(t, strings.HasPrefix(out, "\t\t<script>"))
}

func TestNew_InvalidOptions(t *testing.T) {
	dir := t.TempDir()
	main := texture.FromPath(testutil.WritePNG(t, dir, "main.png", 4, 4))

	_, err := New(main, WithOrdinalStyle("runic"))
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = New(main, WithColorSeries("red", "beige"))
	require.ErrorIs(t, err, core.ErrNotFound)
	_, err = New(main, WithStatementTemplate(StatementTemplate{Signature: "sideways"}))
	require.ErrorIs(t, err, core.ErrValidation)
	_, err = NewFromPath(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestWriteOutputs_ResourceLocations(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "assets")
	testutil.WritePNG(t, filepath.Join(assets, "mymod", "textures", "gui"), "furnace.png", 176, 166)
	r := resource.NewRegistry()
	require.NoError(t, r.Define("mymod", assets))

	s, err := NewFromPath("mymod:gui/furnace", WithRegistry(r))
	require.NoError(t, err)
	require.NoError(t, s.Annotate(must[*element.ItemSlot](t)(element.NewItemSlot("fuel", core.C(56, 53)))))

	file, err := s.WriteDocument("mymod:magcot/furnace")
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(assets)+"/mymod/magcot/furnace.json", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"\": \"mymod:gui/furnace\"")

	file, err = s.WriteStatements("mymod:magcot/furnace", ByAnnotationOrder)
	require.NoError(t, err)
	assert.FileExists(t, file)
	assert.True(t, strings.HasSuffix(file, ".java"))

	file, err = s.WriteMarkup("mymod:magcot/furnace", Groupwise, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(file, "/mymod/magcot/furnace.html"))

	restored, err := LoadDocument(filepath.Join(assets, "mymod", "magcot", "furnace.json"), WithRegistry(r))
	require.NoError(t, err)
	tex, ok := restored.Texture(MainTexture)
	require.True(t, ok)
	loc, ok := tex.Location()
	require.True(t, ok)
	assert.Equal(t, "gui/furnace", loc.Path)
}

func TestWritePage(t *testing.T) {
	s, dir := startSession(t)
	populate(t, s, dir)

	file, err := s.WritePage(filepath.Join(dir, "page", "gui.html"), DefaultPageOptions())
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "\t\t\t\t<script>var allGroupData = {\"slots\": [\"slot1\", \"slot2\"], \"bars\": [\"tank\", \"progress_bar\"]}</script>")
	assert.Contains(t, html, `class="tex--icons texwrap"`)

	page, err := s.AssemblePage(PageOptions{Lang: "en_us"})
	require.NoError(t, err)
	assert.Contains(t, page, `href="./sources/magcotstyle.css"`)
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, core.ErrNotFound)
}
