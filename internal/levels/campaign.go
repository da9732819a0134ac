package levels

import "fmt"

// Campaign is an ordered list of levels played one after another.
type Campaign struct {
	levels []Level
}

// NewCampaign orders levels as given.
func NewCampaign(levels []Level) *Campaign {
	return &Campaign{levels: levels}
}

// LoadCampaign reads every level of the loader into a campaign.
func LoadCampaign(l *Loader) (*Campaign, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewCampaign(levels), nil
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.levels)
}

// Levels returns the levels in play order.
func (c *Campaign) Levels() []Level {
	return c.levels
}

// At returns the level at index i.
func (c *Campaign) At(i int) (Level, error) {
	if i < 0 || i >= len(c.levels) {
		return Level{}, fmt.Errorf("%w: index %d", ErrLevelNotFound, i)
	}
	return c.levels[i], nil
}

// Index returns the position of the level with id, or -1.
func (c *Campaign) Index(id string) int {
	for i, lvl := range c.levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the level with id.
func (c *Campaign) Get(id string) (Level, error) {
	i := c.Index(id)
	if i < 0 {
		return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return c.levels[i], nil
}

// Next returns the level after index i, wrapping to the first.
func (c *Campaign) Next(i int) (Level, int, error) {
	if len(c.levels) == 0 {
		return Level{}, -1, ErrLevelNotFound
	}
	n := (i + 1) % len(c.levels)
	return c.levels[n], n, nil
}
