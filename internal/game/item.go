package game

import (
	"fmt"

	"github.com/pixil98/go-dungeon/internal/storage"
	"github.com/pixil98/go-errors"
)

// Item is a static item definition. The list is built once at world init and
// entities reference items by position in it, so the build must be
// deterministic for a given asset set.
type Item struct {
	Index int32

	ClassName  string
	PickupName string
	Quantity   int32
	Flags      int32
}

// ItemSpec is the JSON asset shape for an item definition.
type ItemSpec struct {
	ClassName  string `json:"classname"`
	PickupName string `json:"pickup_name"`
	Quantity   int32  `json:"quantity"`
	Flags      int32  `json:"flags"`
}

func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()

	if s.ClassName == "" {
		el.Add(fmt.Errorf("classname is required"))
	}
	if s.PickupName == "" {
		el.Add(fmt.Errorf("pickup_name is required"))
	}
	if s.Quantity < 0 {
		el.Add(fmt.Errorf("quantity must not be negative"))
	}

	return el.Err()
}

// BuildItems turns an asset catalog into the indexed item list, in the
// catalog's sorted-id order.
func BuildItems(c *storage.Catalog[*ItemSpec]) []Item {
	items := make([]Item, 0, c.Len())
	for i, id := range c.Ids() {
		spec := c.Get(id)
		items = append(items, Item{
			Index:      int32(i),
			ClassName:  spec.ClassName,
			PickupName: spec.PickupName,
			Quantity:   spec.Quantity,
			Flags:      spec.Flags,
		})
	}
	return items
}

// DefaultItems is the compiled-in item list used when no asset catalog is
// configured.
func DefaultItems() []Item {
	items := []Item{
		{ClassName: "item_health", PickupName: "Health", Quantity: 10},
		{ClassName: "item_health-large", PickupName: "Large Health", Quantity: 25},
		{ClassName: "key_red", PickupName: "Red Key", Quantity: 1},
		{ClassName: "key_blue", PickupName: "Blue Key", Quantity: 1},
		{ClassName: "weapon_sword", PickupName: "Sword", Quantity: 1},
		{ClassName: "weapon_crossbow", PickupName: "Crossbow", Quantity: 1},
		{ClassName: "ammo_bolts", PickupName: "Bolts", Quantity: 20},
	}
	for i := range items {
		items[i].Index = int32(i)
	}
	return items
}
