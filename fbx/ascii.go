package fbx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type tokenType int

const (
	tokIdent tokenType = iota
	tokNumber
	tokString
	tokOperator
	tokBlockStart
	tokBlockEnd
	tokEOL
	tokEOF
)

// asciiParser reads the text form of FBX into the same Node tree as the
// binary reader.
type asciiParser struct {
	r   io.Reader
	buf []byte
	err error
}

func (p *asciiParser) errorf(f string, a ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(f, a...)
	}
}

func (p *asciiParser) read() byte {
	if len(p.buf) > 0 {
		b := p.buf[0]
		p.buf = p.buf[1:]
		return b
	}
	b := []byte{0}
	if p.err == nil {
		_, err := io.ReadFull(p.r, b)
		p.err = err
	}
	return b[0]
}

func (p *asciiParser) getToken() (tokenType, string) {
	var c byte
	for p.err == nil {
		c = p.read()
		switch {
		case c == ';':
			for p.err == nil && c != '\n' {
				c = p.read()
			}
		case c == '{':
			return tokBlockStart, string(c)
		case c == '}':
			return tokBlockEnd, string(c)
		case c == '*' || c == ':' || c == ',':
			return tokOperator, string(c)
		case c >= '0' && c <= '9' || c == '.' || c == '-':
			buf := []byte{c}
			c = p.read()
			for (c >= '0' && c <= '9' || c == '.' || c == 'e' || c == '-') && p.err == nil {
				buf = append(buf, c)
				c = p.read()
			}
			if p.err == nil {
				p.buf = append(p.buf, c)
			}
			return tokNumber, string(buf)
		case c == '\n':
			return tokEOL, ""
		case c == '"':
			buf := []byte{}
			c = p.read()
			for c != '"' && p.err == nil {
				buf = append(buf, c)
				c = p.read()
			}
			return tokString, string(buf)
		case c >= 'A' && c <= 'z':
			buf := []byte{}
			for (c >= 'A' && c <= 'z' || c >= '0' && c <= '9' || c == '-') && p.err == nil {
				buf = append(buf, c)
				c = p.read()
			}
			if p.err == nil {
				p.buf = append(p.buf, c)
			}
			return tokIdent, string(buf)
		}
	}
	return tokEOF, ""
}

func (p *asciiParser) skip(t tokenType) {
	typ, s := p.getToken()
	if typ != t && p.err == nil {
		p.errorf("unexpected token %q", s)
	}
}

// parseArrayAttr reads the `*N { a: ... }` array form.
func (p *asciiParser) parseArrayAttr() *Attr {
	_, s := p.getToken()
	size, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		p.errorf("bad array size %q", s)
	}
	p.skip(tokBlockStart)
	for p.err == nil {
		if _, s := p.getToken(); s == ":" {
			break
		}
	}
	var dvalues []float64
	var hasPoint bool
	for int64(len(dvalues)) < size && p.err == nil {
		typ, s := p.getToken()
		if typ == tokEOL || typ == tokOperator {
			continue
		} else if typ == tokBlockEnd {
			break
		} else if typ == tokNumber {
			v, _ := strconv.ParseFloat(s, 64)
			dvalues = append(dvalues, v)
			hasPoint = hasPoint || strings.Contains(s, ".")
		} else {
			p.errorf("invalid token %q in array", s)
			break
		}
	}
	if int64(len(dvalues)) != size {
		p.errorf("array size %v != %v", size, len(dvalues))
	}
	var values interface{} = dvalues
	if !hasPoint {
		i32 := make([]int32, len(dvalues))
		for i, v := range dvalues {
			i32[i] = int32(v)
		}
		values = i32
	}
	return &Attr{Value: values, Count: uint(size)}
}

func (p *asciiParser) parseNodeList() []*Node {
	var nodes []*Node
	for p.err == nil {
		typ, s := p.getToken()
		if typ == tokEOL {
			continue
		} else if typ == tokEOF || typ == tokBlockEnd {
			break
		} else if typ != tokIdent {
			break
		}
		p.skip(tokOperator)
		node := &Node{Name: s}
		nodes = append(nodes, node)
		for p.err == nil {
			typ, s := p.getToken()
			if typ == tokEOL {
				break
			} else if typ == tokBlockStart {
				node.Children = p.parseNodeList()
				break
			} else if typ == tokNumber {
				if strings.Contains(s, ".") {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						p.errorf("bad number %q", s)
					}
					node.Attrs = append(node.Attrs, &Attr{Value: v})
				} else {
					v, err := strconv.ParseInt(s, 10, 64)
					if err != nil {
						p.errorf("bad number %q", s)
					}
					node.Attrs = append(node.Attrs, &Attr{Value: v})
				}
			} else if typ == tokString {
				node.Attrs = append(node.Attrs, &Attr{Value: s})
			} else if typ == tokOperator && s == "*" {
				node.Attrs = append(node.Attrs, p.parseArrayAttr())
			}
		}
	}
	return nodes
}

func (p *asciiParser) Parse() (*Node, error) {
	root := &Node{Name: "_FBX_ROOT"}
	root.Children = p.parseNodeList()
	if p.err != nil && p.err != io.EOF && p.err != io.ErrUnexpectedEOF {
		return nil, p.err
	}
	return root, nil
}
