package domain

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "OutForDelivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPlaced: {
		StatusPreparing: true,
		StatusCancelled: true,
	},
	StatusPreparing: {
		StatusOutForDelivery: true,
		StatusDelivered:      true,
		StatusCancelled:      true,
	},
	StatusOutForDelivery: {
		StatusDelivered: true,
		StatusCancelled: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return allowedTransitions[s][next]
}
