package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-jsonfields/pkg/dom"
)

// Control is a textarea, input or select element.
type Control struct {
	node      *html.Node
	committed string
	listeners map[string][]dom.Listener
}

var _ dom.Element = (*Control)(nil)

func newControl(node *html.Node) *Control {
	c := &Control{
		node:      node,
		listeners: make(map[string][]dom.Listener),
	}
	c.committed = c.Value()
	return c
}

// TagName implements dom.Element.
func (c *Control) TagName() string {
	return c.node.Data
}

// Name implements dom.Element.
func (c *Control) Name() string {
	value, _ := attr(c.node, "name")
	return value
}

// ID returns the id attribute.
func (c *Control) ID() string {
	value, _ := attr(c.node, "id")
	return value
}

// Value implements dom.Element.
func (c *Control) Value() string {
	switch c.node.DataAtom {
	case atom.Textarea:
		return textContent(c.node)
	case atom.Select:
		return selectedOption(c.node)
	default:
		value, _ := attr(c.node, "value")
		return value
	}
}

// SetValue implements dom.Element. The new value also becomes the commit
// baseline, so a later Blur without edits does not fire change.
func (c *Control) SetValue(value string) {
	c.write(value)
	c.committed = value
}

// AddEventListener implements dom.Element.
func (c *Control) AddEventListener(event string, fn dom.Listener) {
	if fn == nil {
		return
	}
	c.listeners[event] = append(c.listeners[event], fn)
}

// ListenerCount reports how many listeners are registered for event.
func (c *Control) ListenerCount(event string) int {
	return len(c.listeners[event])
}

// Input replaces the value as typing would. No event is dispatched until the
// control loses focus.
func (c *Control) Input(value string) {
	c.write(value)
}

// Blur ends an edit. When the value differs from the last committed value the
// change listeners run synchronously, in registration order.
func (c *Control) Blur() {
	current := c.Value()
	if current == c.committed {
		return
	}
	c.committed = current
	c.dispatch(dom.EventChange)
}

// Commit types value into the control and blurs it.
func (c *Control) Commit(value string) {
	c.Input(value)
	c.Blur()
}

// DispatchEvent runs the listeners for event now, the way a script calling
// element.dispatchEvent does. The commit baseline is left alone.
func (c *Control) DispatchEvent(event string) {
	c.dispatch(event)
}

func (c *Control) dispatch(event string) {
	listeners := append([]dom.Listener(nil), c.listeners[event]...)
	for _, fn := range listeners {
		fn(c)
	}
}

func (c *Control) write(value string) {
	switch c.node.DataAtom {
	case atom.Textarea:
		for child := c.node.FirstChild; child != nil; {
			next := child.NextSibling
			c.node.RemoveChild(child)
			child = next
		}
		c.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case atom.Select:
		selectOption(c.node, value)
	default:
		setAttr(c.node, "value", value)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for idx, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

func options(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			if child.DataAtom == atom.Option {
				out = append(out, child)
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

func optionValue(option *html.Node) string {
	if value, ok := attr(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(textContent(option))
}

func selectedOption(n *html.Node) string {
	opts := options(n)
	for _, option := range opts {
		if _, ok := attr(option, "selected"); ok {
			return optionValue(option)
		}
	}
	if len(opts) > 0 {
		return optionValue(opts[0])
	}
	return ""
}

func selectOption(n *html.Node, value string) {
	for _, option := range options(n) {
		removeAttr(option, "selected")
		if optionValue(option) == value {
			setAttr(option, "selected", "")
		}
	}
}
