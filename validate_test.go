package posterwall

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// validSettingsJSON is a minimal well-formed settings object used across tests.
const validSettingsJSON = `{"wallWidth":1400,"wallHeight":800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":"#eee"}`

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, perr := ParseDocument(text)
	if perr != nil {
		t.Fatalf("ParseDocument failed with %q, want success", perr.Reason)
	}
	return doc
}

func wantReason(t *testing.T, text string, want FailReason) {
	t.Helper()
	doc, perr := ParseDocument(text)
	if perr == nil {
		t.Fatalf("ParseDocument succeeded, want reason %q", want)
	}
	if doc != nil {
		t.Error("failed parse returned a non-nil document")
	}
	if perr.Reason != want {
		t.Errorf("reason = %q, want %q", perr.Reason, want)
	}
}

func TestParseDocumentEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \r\n"} {
		wantReason(t, text, FailEmpty)
	}
}

func TestParseDocumentInvalidJSON(t *testing.T) {
	for _, text := range []string{"{", "not json", `{"settings":}`, "[1,2", "nul"} {
		wantReason(t, text, FailInvalidJSON)
	}
}

func TestParseDocumentInvalidRoot(t *testing.T) {
	for _, text := range []string{"[]", `[{"settings":{}}]`, `"hello"`, "42", "true", "null"} {
		wantReason(t, text, FailInvalidRoot)
	}
}

func TestParseDocumentInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{"missing entirely", ``},
		{"not an object", `"settings":42`},
		{"null", `"settings":null`},
		{"missing wallWidth", `"settings":{"wallHeight":800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":"#eee"}`},
		{"zero wallWidth", `"settings":{"wallWidth":0,"wallHeight":800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":"#eee"}`},
		{"negative wallHeight", `"settings":{"wallWidth":1400,"wallHeight":-800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":"#eee"}`},
		{"string wallWidth", `"settings":{"wallWidth":"1400","wallHeight":800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":"#eee"}`},
		{"non-bool showGrid", `"settings":{"wallWidth":1400,"wallHeight":800,"background":"#fff","showGrid":1,"gridStep":20,"gridColor":"#eee"}`},
		{"zero gridStep", `"settings":{"wallWidth":1400,"wallHeight":800,"background":"#fff","showGrid":true,"gridStep":0,"gridColor":"#eee"}`},
		{"non-string background", `"settings":{"wallWidth":1400,"wallHeight":800,"background":7,"showGrid":true,"gridStep":20,"gridColor":"#eee"}`},
		{"non-string gridColor", `"settings":{"wallWidth":1400,"wallHeight":800,"background":"#fff","showGrid":true,"gridStep":20,"gridColor":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "{" + tt.settings + "}"
			if tt.settings == "" {
				text = "{}"
			}
			wantReason(t, text, FailInvalidSettings)
		})
	}
}

// Settings is checked before posters: a document where both are broken
// reports only invalid-settings.
func TestParseDocumentSettingsCheckedFirst(t *testing.T) {
	wantReason(t, `{"settings":{},"posters":"nope"}`, FailInvalidSettings)
}

func TestParseDocumentInvalidPosters(t *testing.T) {
	tests := []struct {
		name    string
		posters string
	}{
		{"missing entirely", ``},
		{"not an array", `"posters":{}`},
		{"null", `"posters":null`},
		{"element not an object", `"posters":[42]`},
		{"missing id", `"posters":[{"sizeId":"s1","x":0,"y":0,"width":100,"height":150,"label":"A"}]`},
		{"numeric id", `"posters":[{"id":7,"sizeId":"s1","x":0,"y":0,"width":100,"height":150,"label":"A"}]`},
		{"missing label", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":100,"height":150}]`},
		{"string x", `"posters":[{"id":"p1","sizeId":"s1","x":"0","y":0,"width":100,"height":150,"label":"A"}]`},
		{"zero width", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":0,"height":150,"label":"A"}]`},
		{"negative height", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":100,"height":-150,"label":"A"}]`},
		{"null image", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":100,"height":150,"label":"A","image":null}]`},
		{"numeric image", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":100,"height":150,"label":"A","image":9}]`},
		{"second element bad", `"posters":[{"id":"p1","sizeId":"s1","x":0,"y":0,"width":100,"height":150,"label":"A"},{"id":"p2"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := `{"settings":` + validSettingsJSON
			if tt.posters != "" {
				text += "," + tt.posters
			}
			text += "}"
			wantReason(t, text, FailInvalidPosters)
		})
	}
}

func TestParseDocumentEmptyPosterList(t *testing.T) {
	doc := mustParse(t, `{"settings":`+validSettingsJSON+`,"posters":[]}`)
	if len(doc.Posters) != 0 {
		t.Errorf("got %d posters, want 0", len(doc.Posters))
	}
	want := Settings{WallWidth: 1400, WallHeight: 800, Background: "#fff", ShowGrid: true, GridStep: 20, GridColor: "#eee"}
	if diff := cmp.Diff(want, doc.Settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentSinglePoster(t *testing.T) {
	doc := mustParse(t, `{"settings":`+validSettingsJSON+`,"posters":[{"id":"p1","sizeId":"s1","x":10,"y":10,"width":100,"height":150,"label":"A"}]}`)
	if len(doc.Posters) != 1 {
		t.Fatalf("got %d posters, want 1", len(doc.Posters))
	}
	want := Poster{ID: "p1", SizeID: "s1", X: 10, Y: 10, Width: 100, Height: 150, Label: "A"}
	if diff := cmp.Diff(want, doc.Posters[0]); diff != "" {
		t.Errorf("poster mismatch (-want +got):\n%s", diff)
	}
	if doc.Posters[0].Image != "" {
		t.Error("poster without image field should have empty Image")
	}
}

// Positions may be negative or far outside the wall, and sizeId may refer to
// no known template. Both are accepted.
func TestParseDocumentTolerantFields(t *testing.T) {
	doc := mustParse(t, `{"settings":`+validSettingsJSON+`,"posters":[{"id":"p1","sizeId":"no-such-template","x":-999,"y":1e6,"width":0.5,"height":150,"label":""}]}`)
	p := doc.Posters[0]
	if p.X != -999 || p.Y != 1e6 {
		t.Errorf("position = (%v, %v), want (-999, 1e6)", p.X, p.Y)
	}
	if p.SizeID != "no-such-template" {
		t.Errorf("sizeId = %q, want dangling reference preserved", p.SizeID)
	}
}

func TestParseDocumentPosterOrderPreserved(t *testing.T) {
	doc := mustParse(t, `{"settings":`+validSettingsJSON+`,"posters":[
		{"id":"z","sizeId":"s1","x":0,"y":0,"width":1,"height":1,"label":"Z"},
		{"id":"a","sizeId":"s1","x":0,"y":0,"width":1,"height":1,"label":"A"},
		{"id":"m","sizeId":"s1","x":0,"y":0,"width":1,"height":1,"label":"M"}]}`)
	var got []string
	for _, p := range doc.Posters {
		got = append(got, p.ID)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, got); diff != "" {
		t.Errorf("poster order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocumentRoundTrip(t *testing.T) {
	orig := &Document{
		Settings: Settings{WallWidth: 1400, WallHeight: 800, Background: "#fafafa", ShowGrid: false, GridStep: 25, GridColor: "#ddd"},
		Posters: []Poster{
			{ID: "p1", SizeID: "s1", X: 10, Y: 20, Width: 100, Height: 150, Label: "First"},
			{ID: "p2", SizeID: "s2", X: -30, Y: 900, Width: 200, Height: 300, Label: "Second", Image: "data:image/png;base64,aGk="},
		},
	}

	data, err := MarshalDocument(orig)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	doc := mustParse(t, string(data))
	if diff := cmp.Diff(orig, doc); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorMessages(t *testing.T) {
	reasons := []FailReason{FailEmpty, FailInvalidJSON, FailInvalidRoot, FailInvalidSettings, FailInvalidPosters}
	seen := map[string]bool{}
	for _, r := range reasons {
		msg := (&ParseError{Reason: r}).Error()
		if msg == "" || msg == string(r) {
			t.Errorf("reason %q has no fixed message", r)
		}
		if seen[msg] {
			t.Errorf("message %q reused across reasons", msg)
		}
		seen[msg] = true
	}
}
