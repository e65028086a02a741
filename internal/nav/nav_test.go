package nav_test

import (
	"testing"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/nav"
)

var cat1 = catalog.Category{ID: "cat1", Name: "Motivational", Icon: catalog.IconBolt}

func TestNew_Home(t *testing.T) {
	s := nav.New().State()
	if s.View != nav.ViewHome {
		t.Errorf("View = %q, want home", s.View)
	}
	if s.SelectedCategory != nil {
		t.Error("SelectedCategory should be nil on home")
	}
}

func TestSelectCategory_ThenBack(t *testing.T) {
	c := nav.New()
	if !c.Browse() {
		t.Fatal("Browse from home failed")
	}
	if !c.SelectCategory(cat1, catalog.ContentWallpapers) {
		t.Fatal("SelectCategory failed")
	}
	s := c.State()
	if s.View != nav.ViewWallpapers {
		t.Errorf("View = %q, want wallpapers", s.View)
	}
	if s.SelectedCategory == nil || s.SelectedCategory.ID != "cat1" {
		t.Errorf("SelectedCategory = %v, want cat1", s.SelectedCategory)
	}

	c.Back()
	s = c.State()
	if s.View != nav.ViewCategories {
		t.Errorf("View after Back = %q, want categories", s.View)
	}
	if s.SelectedCategory != nil {
		t.Errorf("SelectedCategory after Back = %v, want nil", s.SelectedCategory)
	}
}

func TestSelectCategory_Quotes(t *testing.T) {
	c := nav.New()
	c.Browse()
	c.SelectCategory(cat1, catalog.ContentQuotes)
	if s := c.State(); s.View != nav.ViewQuotes || s.ContentType != catalog.ContentQuotes {
		t.Errorf("state = %+v", s)
	}
}

func TestSelectCategory_InvalidType(t *testing.T) {
	c := nav.New()
	c.Browse()
	if c.SelectCategory(cat1, "videos") {
		t.Error("SelectCategory with unknown type should fail")
	}
	if c.State().View != nav.ViewCategories {
		t.Error("state left categories")
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		ok    bool
		want  string
	}{
		{"  courage  ", true, "courage"},
		{"", false, ""},
		{"   \t ", false, ""},
	}
	for _, tt := range tests {
		c := nav.New()
		if got := c.Search(tt.query); got != tt.ok {
			t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.ok)
		}
		s := c.State()
		if tt.ok && (s.View != nav.ViewSearch || s.SearchQuery != tt.want) {
			t.Errorf("Search(%q) state = %+v", tt.query, s)
		}
		if !tt.ok && s.View != nav.ViewHome {
			t.Errorf("Search(%q) moved to %q", tt.query, s.View)
		}
	}
}

func TestAIGenerator_FromHomeAndSearch(t *testing.T) {
	c := nav.New()
	if !c.AIGenerator("fox") {
		t.Fatal("AIGenerator from home failed")
	}
	if s := c.State(); s.View != nav.ViewAIGenerator || s.AIPrompt != "fox" {
		t.Errorf("state = %+v", s)
	}
	c.Back()

	c.Search("ocean")
	if !c.AIGenerator("ocean") {
		t.Fatal("AIGenerator from search failed")
	}
	c.Back()
	if c.State().View != nav.ViewHome {
		t.Error("Back from ai-generator should go home")
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	c := nav.New()
	if c.Back() {
		t.Error("Back from home should be a no-op")
	}
	if c.SelectCategory(cat1, catalog.ContentQuotes) {
		t.Error("SelectCategory from home should be rejected")
	}
	c.Favorites()
	if c.Browse() || c.Search("x") || c.AIGenerator("x") {
		t.Error("transitions from favorites other than Back should be rejected")
	}
	if c.State().View != nav.ViewFavorites {
		t.Errorf("View = %q, want favorites", c.State().View)
	}
}

func TestBack_FixedParents(t *testing.T) {
	for _, v := range []nav.View{nav.ViewCategories, nav.ViewSearch, nav.ViewFavorites, nav.ViewAIGenerator} {
		if p, ok := nav.Parent(v); !ok || p != nav.ViewHome {
			t.Errorf("Parent(%s) = %s, %v", v, p, ok)
		}
	}
	for _, v := range []nav.View{nav.ViewQuotes, nav.ViewWallpapers} {
		if p, _ := nav.Parent(v); p != nav.ViewCategories {
			t.Errorf("Parent(%s) = %s, want categories", v, p)
		}
	}
	if _, ok := nav.Parent(nav.ViewHome); ok {
		t.Error("home has no parent")
	}
}

func TestState_IsCopy(t *testing.T) {
	c := nav.New()
	c.Browse()
	c.SelectCategory(cat1, catalog.ContentQuotes)
	s := c.State()
	s.SelectedCategory.Name = "changed"
	if c.State().SelectedCategory.Name != "Motivational" {
		t.Error("State() leaked internal pointer")
	}
}
