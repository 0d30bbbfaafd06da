package model

// Order is a checkout order split into one group per seller.
type Order struct {
	ID           string        `bson:"_id,omitempty" json:"id"`
	SellerGroups []SellerGroup `bson:"sellerGroups" json:"sellerGroups"`
}

type SellerGroup struct {
	SellerID string      `bson:"sellerId" json:"sellerId"`
	Items    []OrderItem `bson:"items" json:"items"`
	Subtotal float64     `bson:"subtotal" json:"subtotal"`
}

type OrderItem struct {
	ProductID string `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Quantity  *int   `bson:"quantity,omitempty" json:"quantity,omitempty"`
}

// ItemCount sums the quantities of the group, counting an item without a
// quantity as one.
func (g SellerGroup) ItemCount() int {
	count := 0
	for _, item := range g.Items {
		if item.Quantity == nil {
			count++
			continue
		}
		count += *item.Quantity
	}
	return count
}
