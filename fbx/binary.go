package fbx

import (
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

const binaryMagic = "Kaydara FBX Binary  "

type positionReader struct {
	r        io.Reader
	position int64
}

func (r *positionReader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	r.position += int64(n)
	return n, err
}

func (r *positionReader) SkipTo(pos int64) error {
	offset := pos - r.position
	if offset < 0 {
		return fmt.Errorf("cannot rewind")
	}
	r.position = pos
	if s, ok := r.r.(io.Seeker); ok {
		_, err := s.Seek(pos, 0)
		return err
	}
	_, err := io.CopyN(io.Discard, r, offset)
	return err
}

type binaryParser struct {
	r       *positionReader
	err     error
	version uint32
}

func (p *binaryParser) read(v interface{}) {
	if p.err == nil {
		p.err = binary.Read(p.r, binary.LittleEndian, v)
	}
}

func (p *binaryParser) readUint8() uint8 {
	var v uint8
	p.read(&v)
	return v
}

func (p *binaryParser) readUint16() uint16 {
	var v uint16
	p.read(&v)
	return v
}

func (p *binaryParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

func (p *binaryParser) readUint64() uint64 {
	var v uint64
	p.read(&v)
	return v
}

func (p *binaryParser) readFloat() float32 {
	var v float32
	p.read(&v)
	return v
}

func (p *binaryParser) readFloat64() float64 {
	var v float64
	p.read(&v)
	return v
}

func (p *binaryParser) readString(n uint) string {
	b := make([]byte, n)
	p.read(b)
	return string(b)
}

// node headers switched from 32 to 64 bit fields in FBX 7.5
func (p *binaryParser) readOffset() uint64 {
	if p.version >= 7500 {
		return p.readUint64()
	}
	return uint64(p.readUint32())
}

func (p *binaryParser) readArrayAttr(typ uint8) *Attr {
	count := uint(p.readUint32())
	encoding := p.readUint32()
	sz := p.readUint32()
	var buf interface{}
	switch typ {
	case 'b':
		buf = make([]byte, count)
	case 'i':
		buf = make([]int32, count)
	case 'l':
		buf = make([]int64, count)
	case 'f':
		buf = make([]float32, count)
	case 'd':
		buf = make([]float64, count)
	default:
		return nil
	}
	if encoding == 0 {
		p.read(buf)
	} else {
		next := p.r.position + int64(sz)
		zr, err := zlib.NewReader(io.LimitReader(p.r, int64(sz)))
		if err != nil {
			p.err = err
			return &Attr{Value: buf, Count: count}
		}
		defer zr.Close()
		err = binary.Read(zr, binary.LittleEndian, buf)
		if p.err == nil {
			p.err = err
		}
		p.r.SkipTo(next)
	}
	return &Attr{Value: buf, Count: count}
}

func (p *binaryParser) readAttr() *Attr {
	typ := p.readUint8()
	switch typ {
	case 'B', 'C':
		return &Attr{Value: p.readUint8()}
	case 'Y':
		return &Attr{Value: p.readUint16()}
	case 'I':
		return &Attr{Value: int32(p.readUint32())}
	case 'L':
		return &Attr{Value: int64(p.readUint64())}
	case 'F':
		return &Attr{Value: p.readFloat()}
	case 'D':
		return &Attr{Value: p.readFloat64()}
	case 'S':
		return &Attr{Value: p.readString(uint(p.readUint32()))}
	case 'R':
		buf := make([]byte, p.readUint32())
		p.read(buf)
		return &Attr{Value: buf}
	case 'b', 'i', 'l', 'f', 'd':
		return p.readArrayAttr(typ)
	}
	p.err = fmt.Errorf("unknown attr type: %v", typ)
	return nil
}

func (p *binaryParser) readNode() *Node {
	next := p.readOffset()
	nattr := p.readOffset()
	attrsz := p.readOffset()
	name := p.readString(uint(p.readUint8()))

	if next == 0 {
		return nil
	}
	if nattr*2 > attrsz {
		// broken record, step over it
		p.err = p.r.SkipTo(int64(next))
		return nil
	}

	n := &Node{Name: name}
	for i := uint64(0); i < nattr && p.err == nil; i++ {
		n.Attrs = append(n.Attrs, p.readAttr())
	}
	if p.err != nil && p.err != io.EOF {
		return nil
	}

	for p.r.position < int64(next) && p.err == nil {
		if child := p.readNode(); child != nil {
			n.Children = append(n.Children, child)
		}
	}

	if p.err == nil {
		p.err = p.r.SkipTo(int64(next))
	}
	if p.err != nil && p.err != io.EOF {
		return nil
	}
	return n
}

func (p *binaryParser) Parse() (*Node, error) {
	if p.readString(20) != binaryMagic {
		return nil, fmt.Errorf("not a binary fbx")
	}
	p.readString(3) // 0x1a 0x00 and padding
	p.version = p.readUint32()

	root := &Node{Name: "_FBX_ROOT"}
	for p.err == nil {
		if node := p.readNode(); node != nil {
			root.Children = append(root.Children, node)
		}
	}
	if p.err != nil && p.err != io.EOF {
		return nil, p.err
	}
	return root, nil
}
