package aggregate

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "whitespace and tags", in: "  a\n\nb   <div>x</div>  ", want: "a b x"},
		{name: "empty", in: "", want: ""},
		{name: "blank", in: " \n\t ", want: ""},
		{name: "control whitespace", in: "\ta\r\n b\vc", want: "a b c"},
		{name: "no-break space", in: "a\u00a0\u00a0b", want: "a b"},
		{name: "line separator", in: "a\u2028b\u2029c", want: "a b c"},
		{name: "inner byte-order mark", in: "a\ufeffb", want: "a b"},
		{name: "leading byte-order mark", in: "\ufeffconst a = 1;", want: "const a = 1;"},
		{name: "byte-order mark before frontmatter", in: "\ufeff---\ntitle: x\n---\nbody", want: " body"},
		{name: "unicode edges trimmed", in: "\u00a0\u3000a\u2028", want: "a"},
		{name: "template literal", in: "a {`x ${y}`} b", want: "a  b"},
		{name: "template literal is non-greedy", in: "{`x`} keep {`y`}", want: " keep "},
		{name: "self closing tag", in: "<Button />label", want: "label"},
		{name: "bare comparison eaten", in: "if (a < b && c > d) {}", want: "if (a  d) {}"},
		{name: "leading frontmatter", in: "---\ntitle: x\n---\nbody", want: " body"},
		{name: "frontmatter only at start", in: "a\n---\nb\n---", want: "a --- b ---"},
		{name: "only first frontmatter", in: "--- a --- b --- c ---", want: " b --- c ---"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_TagOnlyInput(t *testing.T) {
	if got := Normalize("  a\n\nb   <div></div>  "); got != "a b " {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeMarkdown(t *testing.T) {
	in := "---\ntitle: x\n---\n# Hello\n\nSome *em* text <span>raw</span>\n\n```ts\nconst a = 1;\n```\n"
	want := "Hello Some em text raw const a = 1;"
	if got := NormalizeMarkdown(in); got != want {
		t.Fatalf("NormalizeMarkdown = %q, want %q", got, want)
	}
}

func TestNormalizeMarkdown_DropsHTMLBlock(t *testing.T) {
	in := "<div>\nhidden\n</div>\n\nvisible\n"
	if got := NormalizeMarkdown(in); got != "visible" {
		t.Fatalf("unexpected: %q", got)
	}
}
