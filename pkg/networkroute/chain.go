package networkroute

// Chain is the double-ended sequence of fragment views assembled for one route.
// front holds the prepended views in reverse order, back the seed and appended views.
type Chain struct {
	front []FragmentView
	back  []FragmentView
	ids   map[FragmentID]struct{}
}

func NewChain(seed FragmentView) *Chain {
	return &Chain{
		front: make([]FragmentView, 0),
		back:  []FragmentView{seed},
		ids:   map[FragmentID]struct{}{seed.ID(): {}},
	}
}

func (c *Chain) PushFront(v FragmentView) {
	c.front = append(c.front, v)
	c.ids[v.ID()] = struct{}{}
}

func (c *Chain) PushBack(v FragmentView) {
	c.back = append(c.back, v)
	c.ids[v.ID()] = struct{}{}
}

func (c *Chain) First() FragmentView {
	if len(c.front) > 0 {
		return c.front[len(c.front)-1]
	}
	return c.back[0]
}

func (c *Chain) Last() FragmentView {
	if len(c.back) > 0 {
		return c.back[len(c.back)-1]
	}
	return c.front[0]
}

func (c *Chain) Len() int {
	return len(c.front) + len(c.back)
}

func (c *Chain) Contains(id FragmentID) bool {
	_, ok := c.ids[id]
	return ok
}

func (c *Chain) at(i int) FragmentView {
	if i < len(c.front) {
		return c.front[len(c.front)-1-i]
	}
	return c.back[i-len(c.front)]
}

// Views returns the chain head to tail.
func (c *Chain) Views() []FragmentView {
	views := make([]FragmentView, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		views = append(views, c.at(i))
	}
	return views
}

// Tail returns the ids of the last n views, head to tail.
func (c *Chain) Tail(n int) []FragmentID {
	from := c.Len() - n
	if from < 0 {
		from = 0
	}
	ids := make([]FragmentID, 0, c.Len()-from)
	for i := from; i < c.Len(); i++ {
		ids = append(ids, c.at(i).ID())
	}
	return ids
}
