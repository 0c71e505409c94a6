package models

// QAPair is one question/answer row from the input table.
type QAPair struct {
	Question string
	Answer   string
}
