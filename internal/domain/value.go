// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueKind identifica o conteúdo de uma célula normalizada
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindText
	KindNumber
)

// Value é uma célula tipada: texto, número ou ausente
type Value struct {
	kind ValueKind
	text string
	num  float64
}

func Missing() Value {
	return Value{kind: KindMissing}
}

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// TextOrMissing trata texto em branco como ausente
func TextOrMissing(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Missing()
	}
	return Text(s)
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Float retorna o valor numérico; false quando a célula não é número
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String é a forma textual usada em chaves de agrupamento e exportação.
// Células ausentes viram string vazia.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal compara tipo e conteúdo
func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && v.text == other.text && v.num == other.num
}

// MarshalJSON serializa ausente como null e número como número
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		// UTF-8 inválido vira U+FFFD, como no encoding/json
		return json.Marshal(v.text)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}
