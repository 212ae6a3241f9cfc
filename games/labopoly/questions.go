/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed questions.json
var defaultQuestions []byte

var (
	ErrBadQuestionRef  = errors.New("question reference out of range")
	ErrEmptyCollection = errors.New("question collection is empty")
	ErrNoDistractors   = errors.New("multiple choice question has no wrong answers")
)

type QuestionKind string

const (
	MultipleChoice QuestionKind = "multiple choice"
	FreeText       QuestionKind = "input"
)

// Category names the pool a question is drawn from.
type Category string

const (
	CategoryProperty Category = "property"
	CategoryUtility  Category = "utility"
	CategoryAuction  Category = "auction"
)

type Question struct {
	Kind    QuestionKind `json:"type"`
	Text    string       `json:"text"`
	Image   string       `json:"image,omitempty"`
	Correct string       `json:"correct"`
	Wrong   []string     `json:"wrong,omitempty"`
}

// QuestionPrompt is what players see. It never carries the answer.
type QuestionPrompt struct {
	Kind    QuestionKind `json:"questionType"`
	Image   string       `json:"questionImage,omitempty"`
	Text    string       `json:"questionText"`
	Choices []string     `json:"choices,omitempty"`
}

// QuestionRef points at one question in a bank.
type QuestionRef struct {
	Category   Category `json:"category"`
	Collection int      `json:"collection,omitempty"`
	Index      int      `json:"index"`
}

type QuestionBank struct {
	Property [][]Question `json:"property"`
	Utility  [][]Question `json:"utility"`
	Auction  []Question   `json:"auction"`
}

// LoadQuestionBank reads a bank from path, or the built-in bank when path is empty.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	data := defaultQuestions
	if path != "" {
		var err error

		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	bank := &QuestionBank{}
	if err := json.Unmarshal(data, bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	if err := bank.validate(NewBoard()); err != nil {
		return nil, err
	}

	return bank, nil
}

// validate checks that every collection on the board can be asked about.
// The auction pool may be empty.
func (b *QuestionBank) validate(board []Tile) error {
	properties, utilities := collectionCounts(board)

	for i := range properties {
		if i >= len(b.Property) || len(b.Property[i]) == 0 {
			return fmt.Errorf("property collection %d: %w", i, ErrEmptyCollection)
		}
	}

	for i := range utilities {
		if i >= len(b.Utility) || len(b.Utility[i]) == 0 {
			return fmt.Errorf("utility collection %d: %w", i, ErrEmptyCollection)
		}
	}

	check := func(where string, qs []Question) error {
		for i, q := range qs {
			if q.Kind == MultipleChoice && len(q.Wrong) == 0 {
				return fmt.Errorf("%s question %d: %w", where, i, ErrNoDistractors)
			}
		}

		return nil
	}

	for i, qs := range b.Property {
		if err := check(fmt.Sprintf("property collection %d", i), qs); err != nil {
			return err
		}
	}

	for i, qs := range b.Utility {
		if err := check(fmt.Sprintf("utility collection %d", i), qs); err != nil {
			return err
		}
	}

	return check("auction", b.Auction)
}

func (b *QuestionBank) collection(category Category, collection int) ([]Question, bool) {
	switch category {
	case CategoryProperty:
		if collection < 0 || collection >= len(b.Property) {
			return nil, false
		}

		return b.Property[collection], true
	case CategoryUtility:
		if collection < 0 || collection >= len(b.Utility) {
			return nil, false
		}

		return b.Utility[collection], true
	case CategoryAuction:
		return b.Auction, true
	}

	return nil, false
}

// Lookup resolves a reference to its question.
func (b *QuestionBank) Lookup(ref QuestionRef) (Question, error) {
	qs, ok := b.collection(ref.Category, ref.Collection)
	if !ok || ref.Index < 0 || ref.Index >= len(qs) {
		return Question{}, fmt.Errorf("%s/%d/%d: %w", ref.Category, ref.Collection, ref.Index, ErrBadQuestionRef)
	}

	return qs[ref.Index], nil
}

// Prompt builds the player-facing view, mixing the correct answer in with
// the wrong ones for multiple choice questions.
func (q Question) Prompt(r Rand) QuestionPrompt {
	p := QuestionPrompt{
		Kind:  q.Kind,
		Image: q.Image,
		Text:  q.Text,
	}

	if q.Kind == MultipleChoice {
		p.Choices = append([]string{q.Correct}, q.Wrong...)
		shuffle(r, p.Choices)
	}

	return p
}

// Check reports whether answer matches exactly.
func (q Question) Check(answer string) bool {
	return answer == q.Correct
}
