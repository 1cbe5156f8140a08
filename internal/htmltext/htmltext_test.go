package htmltext

import (
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"paragraphs", "<p>A</p><p>B</p>", "A<br>B"},
		{"inline markup", "<p>Hello <b>world</b>  and <i>more</i></p>", "Hello world and more"},
		{"headings and divs", "<h2>Role</h2><div>Details</div><h6>End</h6>", "Role<br>Details<br>End"},
		{"script and style dropped", "<div>Hi<script>alert(1)</script></div><style>p{color:red}</style><p>There</p>", "Hi<br>There"},
		{"blank lines collapse", "<p>A</p><br><br><br><p>B</p>", "A<br><br>B"},
		{"line break inside paragraph", "<p>A<br>B</p>", "A<br>B"},
		{"nested blocks", "<div><p>A</p></div><div><p>B</p></div>", "A<br>B"},
		{"leading and trailing breaks", "<br><br><p>A</p><br>", "A"},
		{"escaped angle brackets", "<p>x &lt; y</p>", "x &lt; y"},
		{"empty", "", ""},
		{"whitespace only", "   \n\t", ""},
		{"malformed", "<p>unclosed <b>bold", "unclosed bold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Flatten(tc.in)
			if got != tc.want {
				t.Fatalf("Flatten(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFlattenEmitsOnlyLineBreakMarkup(t *testing.T) {
	in := `<div class="x"><h1>Title</h1><p>Body <a href="/apply">apply</a></p><ul><li>one</li></ul></div>`
	got := Flatten(in)
	stripped := strings.ReplaceAll(got, LineBreak, "")
	if strings.ContainsAny(stripped, "<>") {
		t.Fatalf("Flatten output contains markup: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	in := `
<h3>About the role</h3>
<p>We are hiring.</p>
<ul><li>German C1</li><li>Customer focus</li></ul>
<h2>ignored heading</h2>
<p>Apply <b>today</b>.</p>`

	want := "About the role\n\nWe are hiring.\n\nGerman C1\nCustomer focus\n\nApply today."
	got := PlainText(in)
	if got != want {
		t.Fatalf("PlainText() = %q, want %q", got, want)
	}
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("PlainText output contains markup: %q", got)
	}
}

func TestPlainTextSeparatesLists(t *testing.T) {
	in := `<ul><li>a</li><li>b</li></ul><ol><li>c</li></ol>`
	want := "a\nb\n\nc"
	if got := PlainText(in); got != want {
		t.Fatalf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainTextEmpty(t *testing.T) {
	for _, in := range []string{"", "<div>no paragraphs</div>", "<p> </p>"} {
		if got := PlainText(in); got != "" {
			t.Fatalf("PlainText(%q) = %q, want empty", in, got)
		}
	}
}
