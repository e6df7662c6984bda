package models

// Client owns zero or more vessels.
type Client struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null;index" json:"name"`
}

func (c *Client) Key() uint      { return c.ID }
func (c *Client) SetKey(id uint) { c.ID = id }
