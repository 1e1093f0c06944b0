package ws

import "encoding/json"

// Event is the wire envelope for every push message.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func marshalEvent(name string, data interface{}) []byte {
	payload, err := json.Marshal(Event{Event: name, Data: data})
	if err != nil {
		logger.Error().Err(err).Str("event", name).Msg("failed to marshal event")
		return nil
	}
	return payload
}

// EmitStockUpdate tells every connected client a product's stock changed.
// All emitters are nil-safe so persistence paths work without a running hub.
func (h *Hub) EmitStockUpdate(productID uint, newStock int) {
	if h == nil {
		return
	}
	if msg := marshalEvent("stock_updated", map[string]interface{}{"productId": productID, "newStock": newStock}); msg != nil {
		h.Broadcast(msg)
	}
}

// EmitNewOrder notifies the admin audience of a freshly placed order.
func (h *Hub) EmitNewOrder(order interface{}) {
	if h == nil {
		return
	}
	if msg := marshalEvent("new_order", order); msg != nil {
		h.SendToAdmins(msg)
	}
}

// EmitOrderUpdate notifies the purchaser and the admin audience of an order
// status change.
func (h *Hub) EmitOrderUpdate(userID uint, order interface{}) {
	if h == nil {
		return
	}
	if msg := marshalEvent("order_updated", order); msg != nil {
		h.SendToUser(userID, msg)
		h.SendToAdmins(msg)
	}
}

// EmitProductUpdate announces catalog changes (created/updated/deleted).
func (h *Hub) EmitProductUpdate(data interface{}) {
	if h == nil {
		return
	}
	if msg := marshalEvent("product_updated", data); msg != nil {
		h.Broadcast(msg)
	}
}
