package model

type Commit struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
}

func (c *Commit) ShortID() string {
	if len(c.Hash) < 8 {
		return c.Hash
	}
	return c.Hash[:8]
}
