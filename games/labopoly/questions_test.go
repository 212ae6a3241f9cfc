/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestEmbeddedBankLoads(t *testing.T) {
	bank, err := LoadQuestionBank("")
	if err != nil {
		t.Fatal(err)
	}

	properties, utilities := collectionCounts(NewBoard())
	if len(bank.Property) != properties || len(bank.Utility) != utilities {
		t.Errorf("bank has %d property and %d utility collections, want %d and %d",
			len(bank.Property), len(bank.Utility), properties, utilities)
	}
	if len(bank.Auction) == 0 {
		t.Error("embedded bank has no auction questions")
	}
}

func TestLoadQuestionBankErrors(t *testing.T) {
	dir := t.TempDir()

	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}

		return path
	}

	if _, err := LoadQuestionBank(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	if _, err := LoadQuestionBank(write("bad.json", "{")); err == nil {
		t.Error("malformed JSON should fail")
	}

	if _, err := LoadQuestionBank(write("empty.json", `{"property": [], "utility": []}`)); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("empty bank = %v, want %v", err, ErrEmptyCollection)
	}
}

func TestValidateRequiresDistractors(t *testing.T) {
	bank := testBank(true)
	bank.Property[2] = []Question{{Kind: MultipleChoice, Text: "?", Correct: "yes"}}

	if err := bank.validate(NewBoard()); !errors.Is(err, ErrNoDistractors) {
		t.Errorf("validate = %v, want %v", err, ErrNoDistractors)
	}

	if err := testBank(false).validate(NewBoard()); err != nil {
		t.Errorf("an empty auction pool should validate: %v", err)
	}
}

func TestLookup(t *testing.T) {
	bank := testBank(true)

	q, err := bank.Lookup(QuestionRef{Category: CategoryProperty, Collection: 5})
	if err != nil || q.Correct != "p5" {
		t.Errorf("Lookup = %+v, %v", q, err)
	}

	bad := []QuestionRef{
		{Category: CategoryProperty, Collection: 9},
		{Category: CategoryUtility, Index: 1},
		{Category: "trivia"},
	}
	for _, ref := range bad {
		if _, err := bank.Lookup(ref); !errors.Is(err, ErrBadQuestionRef) {
			t.Errorf("Lookup(%+v) = %v, want %v", ref, err, ErrBadQuestionRef)
		}
	}
}

func TestPromptHidesAnswerKey(t *testing.T) {
	q := Question{Kind: MultipleChoice, Text: "Which is aromatic?", Correct: "benzene", Wrong: []string{"hexane", "ethanol"}}

	p := q.Prompt(&fakeRand{ints: []int{0, 0}})

	if p.Text != q.Text || len(p.Choices) != 3 {
		t.Fatalf("prompt = %+v", p)
	}

	want := []string{"benzene", "ethanol", "hexane"}
	if got := slices.Sorted(slices.Values(p.Choices)); !slices.Equal(got, want) {
		t.Errorf("choices = %v, want %v", got, want)
	}

	if !q.Check("benzene") || q.Check("Benzene") || q.Check("hexane") {
		t.Error("Check should only accept the exact correct answer")
	}

	free := Question{Kind: FreeText, Text: "Symbol for sodium?", Correct: "Na"}
	if p := free.Prompt(&fakeRand{}); p.Choices != nil {
		t.Errorf("free text prompt has choices %v", p.Choices)
	}
}
