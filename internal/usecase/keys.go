package usecase

import (
	"fmt"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/querycache"
)

// Ключи кэша по ресурсам. Списки и отдельные записи одного ресурса
// различаются первым параметром, поэтому (resource, *) покрывает оба.

func profileKey() querycache.Key { return querycache.NewKey(querycache.ResourceUser, "me") }

func boxListKey() querycache.Key { return querycache.NewKey(querycache.ResourceBoxes, "list") }

func boxKey(id string) querycache.Key { return querycache.NewKey(querycache.ResourceBoxes, "id", id) }

func orderListKey(f domain.OrderFilter) querycache.Key {
	return querycache.NewKey(querycache.ResourceOrders, "list",
		fmt.Sprintf("status=%s&limit=%d&offset=%d", f.Status, f.Limit, f.Offset))
}

func orderKey(id string) querycache.Key {
	return querycache.NewKey(querycache.ResourceOrders, "id", id)
}

func sessionPhotosKey(sessionID string) querycache.Key {
	return querycache.NewKey(querycache.ResourcePhotos, "session", sessionID)
}

func slotsKey(r domain.SlotRange) querycache.Key {
	return querycache.NewKey(querycache.ResourceSlots, r.StartDate, r.EndDate)
}

// KeysForEvent — какие записи устаревают после изменения на стороне бэкенда.
func KeysForEvent(ev *domain.ResourceEvent) []querycache.Key {
	switch ev.Type {
	case domain.EventBoxStatusChanged, domain.EventBoxUpdated:
		if ev.ResourceID != "" {
			return []querycache.Key{boxListKey(), boxKey(ev.ResourceID)}
		}
		return []querycache.Key{querycache.AnyOf(querycache.ResourceBoxes)}
	case domain.EventOrderUpdated:
		return []querycache.Key{querycache.AnyOf(querycache.ResourceOrders)}
	case domain.EventPhotoProcessed:
		return []querycache.Key{querycache.AnyOf(querycache.ResourcePhotos)}
	case domain.EventSlotsChanged:
		return []querycache.Key{querycache.AnyOf(querycache.ResourceSlots)}
	case domain.EventSubscription:
		return []querycache.Key{querycache.AnyOf(querycache.ResourceSubscription), profileKey()}
	default:
		return nil
	}
}
