package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node below a root by child index, each step naming
// the tag expected there when the child is a tree:
//
//	/0:page/2:body/1
//
// "/" addresses the root itself. An index of "*" matches every child,
// which only ListPath accepts.
type Path struct {
	IndexAll bool
	Index    int
	// Tag, if not empty, must equal the tag of the child.
	Tag  string
	Next *Path
}

// ChildPath returns the path of child i of the node at parent.
func ChildPath(parent string, i int, child *Node) string {
	seg := strconv.Itoa(i)
	if child.IsTree() {
		seg += ":" + pathTag(child.Text)
	}
	if parent == "/" || parent == "" {
		return "/" + seg
	}
	return parent + "/" + seg
}

func pathTag(t string) string {
	if strings.IndexAny(t, "/'") == -1 {
		return t
	}
	return "'" + strings.ReplaceAll(t, "'", "\\'") + "'"
}

func (p *Path) String() string {
	if p == nil {
		return "/"
	}
	sb := &strings.Builder{}
	for x := p; x != nil; x = x.Next {
		sb.WriteByte('/')
		if x.IndexAll {
			sb.WriteByte('*')
		} else {
			sb.WriteString(strconv.Itoa(x.Index))
		}
		if x.Tag != "" {
			sb.WriteString(":" + pathTag(x.Tag))
		}
	}
	return sb.String()
}

// ParsePath parses p. The root path "/" parses to nil.
func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '/' {
		return nil, fmt.Errorf("path %q should start with '/'", p)
	}
	if p == "/" {
		return nil, nil
	}
	var (
		head *Path
		tail **Path = &head
	)
	rest := p
	for rest != "" {
		seg, next, err := parseSeg(rest[1:])
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", p, err)
		}
		*tail = seg
		tail = &seg.Next
		rest = next
	}
	return head, nil
}

// parseSeg parses one segment and returns what follows it, which is
// empty or starts with '/'.
func parseSeg(frag string) (*Path, string, error) {
	i := strings.IndexAny(frag, ":/")
	if i == -1 {
		i = len(frag)
	}
	seg := &Path{}
	index, all, err := parseIndex(frag[:i])
	if err != nil {
		return nil, "", err
	}
	seg.Index, seg.IndexAll = index, all
	frag = frag[i:]
	if frag == "" || frag[0] == '/' {
		return seg, frag, nil
	}
	tag, rest, err := parseTag(frag[1:])
	if err != nil {
		return nil, "", err
	}
	seg.Tag = tag
	return seg, rest, nil
}

func parseIndex(is string) (index int, all bool, err error) {
	if is == "*" {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, false, fmt.Errorf("bad index %q", is)
	}
	return int(u64), false, nil
}

func parseTag(frag string) (tag, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected tag after ':'")
	}
	if frag[0] != '\'' {
		i := strings.IndexByte(frag, '/')
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			rest := frag[i+1:]
			if rest != "" && rest[0] != '/' {
				return "", "", fmt.Errorf("unexpected %q after quoted tag", rest)
			}
			return string(res), rest, nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath returns the node of n at path p, or nil if there is none. It
// is an error for p to use "*".
func (n *Node) GetPath(p string) (*Node, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	res := n
	for ; yp != nil; yp = yp.Next {
		if yp.IndexAll {
			return nil, fmt.Errorf("path %q: any index in get", p)
		}
		c := res.child(yp)
		if c == nil {
			return nil, nil
		}
		res = c
	}
	return res, nil
}

func (n *Node) child(seg *Path) *Node {
	if !n.IsTree() || seg.Index >= len(n.Children) {
		return nil
	}
	c := n.Children[seg.Index]
	if !seg.matches(c) {
		return nil
	}
	return c
}

func (seg *Path) matches(c *Node) bool {
	return seg.Tag == "" || (c.IsTree() && c.Text == seg.Tag)
}

// ListPath appends to dst the nodes of n matching p in document order.
func (n *Node) ListPath(dst []*Node, p string) ([]*Node, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return n.listPath(dst, yp), nil
}

func (n *Node) listPath(dst []*Node, yp *Path) []*Node {
	if yp == nil {
		return append(dst, n)
	}
	if !n.IsTree() {
		return dst
	}
	if !yp.IndexAll {
		if c := n.child(yp); c != nil {
			return c.listPath(dst, yp.Next)
		}
		return dst
	}
	for _, c := range n.Children {
		if yp.matches(c) {
			dst = c.listPath(dst, yp.Next)
		}
	}
	return dst
}
