package xmltree

import (
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<root xmlns:ns="http://example.org/ns">
  <list>
    <item id="a" kind="first">alpha</item>
    <item id="b">beta &amp; gamma</item>
    <ns:extra note="x"/>
  </list>
</root>`

func TestParseAndNavigate(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	root := doc.Root()
	if root.Name() != "root" {
		t.Errorf("root name = %q", root.Name())
	}

	list := root.Child("list")
	if list == nil {
		t.Fatal("list not found")
	}
	items := list.ChildAll("item")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Attr("id") != "a" || items[0].Attr("kind") != "first" {
		t.Errorf("item attrs = %v", items[0].Attributes())
	}
	if items[0].Text() != "alpha" {
		t.Errorf("item text = %q", items[0].Text())
	}
	if items[1].Text() != "beta & gamma" {
		t.Errorf("entity text = %q", items[1].Text())
	}

	// Prefixed elements match by local name.
	if extra := list.Child("extra"); extra == nil || extra.Attr("note") != "x" {
		t.Error("prefixed child not matched by local name")
	}

	if missing := list.Child("absent"); missing != nil {
		t.Errorf("Child(absent) = %v", missing)
	}
	if !items[0].HasAttr("kind") || items[1].HasAttr("kind") {
		t.Error("HasAttr mismatch")
	}
}

func TestPath(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	item := doc.Root().Child("list").ChildAll("item")[1]
	if got := item.Path(); got != "/root/list/item[b]" {
		t.Errorf("Path() = %q", got)
	}
}

func TestXPath(t *testing.T) {
	doc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := doc.XPath("//item[@id='b']")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || nodes[0].Attr("id") != "b" {
		t.Errorf("XPath result = %v", nodes)
	}

	if _, err := doc.XPath("//item["); err == nil {
		t.Error("invalid xpath accepted")
	}
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *Element {
		root := NewElement("root").SetAttr("xmlns", "http://example.org")
		list := root.AddNew("list")
		list.AddNew("item").SetAttr("id", "a").SetText("alpha < beta")
		list.AddNew("item").SetAttr("id", "b").SetAttr("note", "say \"hi\"")
		return root
	}
	first := string(build().Render())
	second := string(build().Render())
	if first != second {
		t.Error("rendering is not deterministic")
	}
	if !strings.HasPrefix(first, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n") {
		t.Error("missing declaration")
	}
	if !strings.Contains(first, "alpha &lt; beta") {
		t.Errorf("text not escaped:\n%s", first)
	}
	if !strings.Contains(first, "note=\"say &quot;hi&quot;\"") {
		t.Errorf("attribute not escaped:\n%s", first)
	}
	if !strings.Contains(first, "<item id=\"b\" note=\"say &quot;hi&quot;\"/>") {
		t.Errorf("empty element not self-closed:\n%s", first)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	root := NewElement("doc")
	root.AddNew("entry").SetAttr("id", "e0").SetText("value & more")
	rendered := root.Render()

	parsed, err := Parse(rendered)
	if err != nil {
		t.Fatal(err)
	}
	entry := parsed.Root().Child("entry")
	if entry == nil || entry.Attr("id") != "e0" {
		t.Fatalf("entry lost in round trip:\n%s", rendered)
	}
	if entry.Text() != "value & more" {
		t.Errorf("text = %q", entry.Text())
	}
}
