package category

import "time"

type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
}
