package tree

// Kind tags the layout behaviour of a node. The set of kinds is closed:
// only [Container] and [Foreign] implement it.
type Kind interface {
	// Name returns the element name the kind was created from.
	Name() string
	isKind()
}

// Container is a flex layout container ("div" in markup).
type Container struct{}

// Foreign is an element the engine does not recognise. It is measured with
// the leaf rules regardless of whether it has children.
type Foreign struct {
	Tag string // Original element name
}

func (Container) Name() string { return "div" }
func (f Foreign) Name() string { return f.Tag }

func (Container) isKind() {}
func (Foreign) isKind()   {}

// KindOf returns the kind for an element name.
func KindOf(tag string) Kind {
	if tag == "div" {
		return Container{}
	}
	return Foreign{Tag: tag}
}
