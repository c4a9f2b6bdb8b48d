package scurry

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type tokenDump struct {
	Line  int         `json:"line"`
	Kind  string      `json:"kind"`
	Value interface{} `json:"value,omitempty"`
}

// DumpTokens renders the token stream as indented JSON.
func DumpTokens(tokens []Token) ([]byte, error) {
	out := make([]tokenDump, 0, len(tokens))
	for _, t := range tokens {
		d := tokenDump{Line: t.Line, Kind: t.Kind.String()}
		switch t.Kind {
		case Ident, StringTok:
			d.Value = t.Text
		case IntegerTok:
			d.Value = t.Int
		case FloatTok:
			d.Value = t.Float
		}
		out = append(out, d)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "dumping tokens")
	}
	return b, nil
}

// DumpBlock renders a parsed block as indented JSON.
func DumpBlock(block Block) ([]byte, error) {
	b, err := json.MarshalIndent(blockNodes(block), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "dumping syntax tree")
	}
	return b, nil
}

func blockNodes(block Block) []map[string]interface{} {
	nodes := make([]map[string]interface{}, 0, len(block))
	for _, e := range block {
		nodes = append(nodes, exprNode(e))
	}
	return nodes
}

func listNodes(items *List[Expression]) []map[string]interface{} {
	return blockNodes(Block(items.Slice()))
}

func exprNode(e Expression) map[string]interface{} {
	switch t := e.(type) {
	case BooleanExpr:
		return map[string]interface{}{"boolean": bool(t)}
	case IntegerExpr:
		return map[string]interface{}{"integer": int64(t)}
	case FloatExpr:
		return map[string]interface{}{"float": float64(t)}
	case StringExpr:
		return map[string]interface{}{"string": string(t)}
	case ListExpr:
		return map[string]interface{}{"list": listNodes(t.Items)}
	case *Call:
		return map[string]interface{}{
			"call": t.ID,
			"line": t.Line,
			"args": listNodes(t.Args),
		}
	case *Definition:
		return map[string]interface{}{
			"definition": t.ID,
			"line":       t.Line,
			"body":       blockNodes(t.Body),
		}
	}
	return map[string]interface{}{"unknown": true}
}
