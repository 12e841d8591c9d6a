package icd

import (
	"encoding/json"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"numeric entity", "http://id.who.int/icd/entity/1435254666", "1435254666"},
		{"https scheme", "https://id.who.int/icd/entity/448895267", "448895267"},
		{"trailing slash", "http://id.who.int/icd/entity/21500692/", "21500692"},
		{"bare namespace is root", "http://id.who.int/icd/entity", "root"},
		{"bare namespace with slash", "http://id.who.int/icd/entity/", "root"},
		{"https namespace", "https://id.who.int/icd/entity", "root"},
		{"local server uri", "http://localhost:80/icd/entity/123", "123"},
		{"already an id", "123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractID(tt.uri); got != tt.want {
				t.Errorf("ExtractID(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

const sampleEntityJSON = `{
	"@id": "http://id.who.int/icd/entity/1435254666",
	"title": {"@language": "en", "@value": "Diseases of the immune system"},
	"definition": {"@language": "en", "@value": "A disorder of the immune system."},
	"parent": ["http://id.who.int/icd/entity"],
	"child": [
		"http://id.who.int/icd/entity/1954798891",
		"http://id.who.int/icd/entity/21500692"
	],
	"synonym": [
		{"label": {"@language": "en", "@value": "immune disorder"}}
	],
	"exclusion": [
		{
			"label": {"@language": "en", "@value": "Certain conditions originating elsewhere"},
			"foundationReference": "http://id.who.int/icd/entity/448895267"
		}
	],
	"browserUrl": "https://icd.who.int/browse/2024-01/foundation/en#1435254666"
}`

func TestEntity_Detail(t *testing.T) {
	var e Entity
	if err := json.Unmarshal([]byte(sampleEntityJSON), &e); err != nil {
		t.Fatalf("unmarshal sample entity: %v", err)
	}

	d := e.Detail()

	if d.ID != "1435254666" {
		t.Errorf("got ID %q, want %q", d.ID, "1435254666")
	}
	if d.Title != "Diseases of the immune system" {
		t.Errorf("got Title %q", d.Title)
	}
	if d.Definition != "A disorder of the immune system." {
		t.Errorf("got Definition %q", d.Definition)
	}
	if len(d.ParentIDs) != 1 || d.ParentIDs[0] != "root" {
		t.Errorf("got ParentIDs %v, want [root]", d.ParentIDs)
	}
	if len(d.ChildIDs) != 2 || d.ChildIDs[0] != "1954798891" || d.ChildIDs[1] != "21500692" {
		t.Errorf("got ChildIDs %v", d.ChildIDs)
	}
	if len(d.Synonyms) != 1 || d.Synonyms[0].Label != "immune disorder" {
		t.Errorf("got Synonyms %v", d.Synonyms)
	}
	if len(d.Exclusions) != 1 {
		t.Fatalf("got %d exclusions, want 1", len(d.Exclusions))
	}
	if d.Exclusions[0].FoundationRef != "448895267" {
		t.Errorf("got exclusion ref %q, want %q", d.Exclusions[0].FoundationRef, "448895267")
	}
	if d.LongDefinition != "" {
		t.Errorf("got LongDefinition %q, want empty", d.LongDefinition)
	}
	if d.BrowserURL == "" {
		t.Error("BrowserURL not mapped")
	}
}
