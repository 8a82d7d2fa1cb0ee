package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
	"varotra-backend-go/internal/timecodec"
)

// ErrLocalNotFound is returned by local-mode mutations targeting a record
// that is not in the in-memory dataset.
var ErrLocalNotFound = errors.New("record not found in local dataset")

// localData is the in-memory dataset served in degraded-local mode. It is
// owned exclusively by one workspace and only mutated under the
// workspace's lock; it does no locking of its own.
type localData struct {
	contacts  []models.Contact
	products  []models.Product
	orders    []models.Order
	notes     []models.Note
	reminders []models.Reminder
	vendor    *models.VendorProfile
}

func newLocalData(ds models.Dataset) *localData {
	return &localData{
		contacts:  append([]models.Contact(nil), ds.Contacts...),
		products:  append([]models.Product(nil), ds.Products...),
		orders:    append([]models.Order(nil), ds.Orders...),
		notes:     append([]models.Note(nil), ds.Notes...),
		reminders: append([]models.Reminder(nil), ds.Reminders...),
		vendor:    ds.Vendor,
	}
}

func (l *localData) dataset() models.Dataset {
	return models.Dataset{
		Contacts:  append([]models.Contact(nil), l.contacts...),
		Products:  append([]models.Product(nil), l.products...),
		Orders:    append([]models.Order(nil), l.orders...),
		Notes:     append([]models.Note(nil), l.notes...),
		Reminders: append([]models.Reminder(nil), l.reminders...),
		Vendor:    l.vendor,
	}
}

// localID fabricates a unique placeholder id. The prefix keeps local ids
// visually and programmatically distinct from store-assigned ones; they
// are never persisted; migration discards them.
func localID() string {
	return "local-" + uuid.NewString()
}

func addLocal[T any, P store.Doc[T]](list *[]T, owner string, doc P, less func(a, b T) bool) string {
	now := time.Now().UTC()
	meta := doc.DocMeta()
	meta.ID = localID()
	meta.UserID = owner
	meta.CreatedAt = now
	meta.UpdatedAt = now
	*list = append(*list, *doc)
	sortLocal(*list, less)
	return meta.ID
}

func updateLocal[T any, P store.Doc[T]](list []T, id string, patch map[string]any, less func(a, b T) bool) error {
	for i := range list {
		p := P(&list[i])
		if p.DocMeta().ID != id {
			continue
		}
		if err := applyPatch(&list[i], patch); err != nil {
			return err
		}
		P(&list[i]).DocMeta().UpdatedAt = time.Now().UTC()
		sortLocal(list, less)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrLocalNotFound, id)
}

// deleteLocal mirrors the store policy: removing an absent record is not
// an error.
func deleteLocal[T any, P store.Doc[T]](list *[]T, id string) {
	kept := (*list)[:0]
	for i := range *list {
		if P(&(*list)[i]).DocMeta().ID != id {
			kept = append(kept, (*list)[i])
		}
	}
	*list = kept
}

// findLocal returns a copy of the record with id, or nil when absent,
// matching the store's getById contract.
func findLocal[T any, P store.Doc[T]](list []T, id string) *T {
	for i := range list {
		if P(&list[i]).DocMeta().ID == id {
			item := list[i]
			return &item
		}
	}
	return nil
}

func sortLocal[T any](list []T, less func(a, b T) bool) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// applyPatch merges patch into doc with the same partial semantics the
// store applies: only supplied fields change, immutable metadata is
// dropped, date values may arrive in the store's pair encoding. The merge
// goes through JSON so nested shapes behave like document updates.
func applyPatch[T any](doc *T, patch map[string]any) error {
	base, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode record for patching: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return fmt.Errorf("failed to decode record for patching: %w", err)
	}
	for field, value := range timecodec.FromStore(patch) {
		switch field {
		case "id", "userId", "createdAt", "updatedAt":
			continue
		}
		m[field] = value
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode patched record: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("patch does not fit the record shape: %w", err)
	}
	*doc = out
	return nil
}

func (l *localData) setVendor(owner string, profile models.VendorProfile) {
	now := time.Now().UTC()
	if l.vendor != nil {
		profile.Meta = l.vendor.Meta
		profile.UpdatedAt = now
	} else {
		profile.Meta = models.Meta{ID: localID(), UserID: owner, CreatedAt: now, UpdatedAt: now}
	}
	l.vendor = &profile
}
