package models

import "strings"

type MemoType string

const (
	MemoText   MemoType = "text"
	MemoID     MemoType = "id"
	MemoHash   MemoType = "hash"
	MemoReturn MemoType = "return"
)

var memoTypes = []MemoType{MemoText, MemoID, MemoHash, MemoReturn}

func MemoTypes() []MemoType {
	return append([]MemoType(nil), memoTypes...)
}

// IsValid is case sensitive: "TEXT" is not a memo type.
func (mt MemoType) IsValid() bool {
	switch mt {
	case MemoText, MemoID, MemoHash, MemoReturn:
		return true
	}
	return false
}

func MemoTypesText() string {
	names := make([]string, 0, len(memoTypes))
	for _, mt := range memoTypes {
		names = append(names, string(mt))
	}
	return strings.Join(names, "|")
}
