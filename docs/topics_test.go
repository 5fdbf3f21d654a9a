package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in the readme can be loaded, and every .md file is
	// listed in the readme.
	index := Index()
	if len(index) == 0 {
		t.Fatal("Index() is empty")
	}
	listed := make(map[string]bool)
	for _, topic := range index {
		listed[topic.Name] = true
		t.Run("load_"+topic.Name, func(t *testing.T) {
			if _, err := GetTopic(topic.Name); err != nil {
				t.Errorf("GetTopic(%q) unexpected error: %v", topic.Name, err)
			}
			if topic.Synopsis == "" {
				t.Errorf("topic %q has no synopsis in readme.md", topic.Name)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	for _, name := range all {
		if !listed[name] {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
	if len(all) != len(index) {
		t.Errorf("GetAllTopics() = %v, want the %d topics of the readme", all, len(index))
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(\"nope\") want an error")
	}
}

func TestGetTopics_Star(t *testing.T) {
	got, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(\"*\") unexpected error: %v", err)
	}
	all, _ := GetAllTopics()
	for _, name := range all {
		content, _ := GetTopic(name)
		if !strings.Contains(got, content) {
			t.Errorf("GetTopics(\"*\") does not contain topic %q", name)
		}
	}
	if strings.Contains(got, "Run `stacker topic <topic>`") {
		t.Error("GetTopics(\"*\") contains the readme")
	}
}

// TestMarkdown checks that every topic starts with a level 1 title and that
// its tables are well formed.
func TestMarkdown(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			root := md.Parser().Parse(text.NewReader(content))
			h, ok := root.FirstChild().(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("%s: does not start with a level 1 heading", file)
			}

			// a table row that is not parsed as a table is a broken table.
			pipes := strings.Count(string(content), "\n|")
			tables := 0
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if entering && n.Kind().String() == "Table" {
					tables++
				}
				return ast.WalkContinue, nil
			})
			if pipes > 0 && tables == 0 {
				t.Errorf("%s: has table rows but no table", file)
			}
		})
	}
}
