package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"varotra-backend-go/internal/models"
)

// ProfileService manages the vendor profile collection. The profile is a
// per-owner singleton: Set updates the owner's existing document when one
// exists and only creates on first call, so two profiles for one owner
// can never coexist.
type ProfileService struct {
	client *firestore.Client
	name   string
	log    *zap.Logger
}

func NewProfileService(client *firestore.Client, name string, log *zap.Logger) *ProfileService {
	return &ProfileService{client: client, name: name, log: log.Named(name)}
}

func (p *ProfileService) col() *firestore.CollectionRef {
	return p.client.Collection(p.name)
}

func (p *ProfileService) ownerQuery(ownerID string) firestore.Query {
	return p.col().Where("userId", "==", ownerID).Limit(1)
}

// Get returns the owner's profile, or (nil, nil) when none has been set.
func (p *ProfileService) Get(ctx context.Context, ownerID string) (*models.VendorProfile, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}
	iter := p.ownerQuery(ownerID).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, Classify(p.name+".get", err)
	}
	return decodeProfile(doc)
}

// Set creates the owner's profile on first call and updates it in place
// afterwards. The lookup and write run in one transaction so concurrent
// calls cannot race into creating a duplicate. createdAt is only stamped
// on creation; updates refresh updatedAt alone.
func (p *ProfileService) Set(ctx context.Context, ownerID string, profile *models.VendorProfile) error {
	if ownerID == "" {
		return ErrNotAuthenticated
	}
	err := p.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		iter := tx.Documents(p.ownerQuery(ownerID))
		existing, err := iter.Next()
		if err == iterator.Done {
			meta := profile.DocMeta()
			meta.ID = ""
			meta.UserID = ownerID
			ref := p.col().NewDoc()
			if err := tx.Create(ref, profile); err != nil {
				return err
			}
			meta.ID = ref.ID
			return nil
		}
		if err != nil {
			return err
		}
		profile.DocMeta().ID = existing.Ref.ID
		return tx.Update(existing.Ref, []firestore.Update{
			{Path: "shopName", Value: profile.ShopName},
			{Path: "ownerName", Value: profile.OwnerName},
			{Path: "phone", Value: profile.Phone},
			{Path: "email", Value: profile.Email},
			{Path: "address", Value: profile.Address},
			{Path: "currency", Value: profile.Currency},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return Classify(p.name+".set", err)
	}
	return nil
}

// Subscribe delivers the owner's current profile (nil when absent) on
// every remote change. Teardown semantics match Collection.Subscribe.
func (p *ProfileService) Subscribe(ctx context.Context, ownerID string, onChange func(*models.VendorProfile), onError func(error)) (func(), error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}
	sctx, cancel := context.WithCancel(ctx)
	snaps := p.ownerQuery(ownerID).Snapshots(sctx)
	sub := &subscription{cancel: cancel}

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if sctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				sub.fail(func() { onError(Classify(p.name+".subscribe", err)) })
				return
			}

			var profile *models.VendorProfile
			doc, err := snap.Documents.Next()
			if err == nil {
				if profile, err = decodeProfile(doc); err != nil {
					p.log.Warn("skipping undecodable profile", zap.Error(err))
					profile = nil
				}
			} else if err != iterator.Done {
				sub.fail(func() { onError(Classify(p.name+".subscribe", err)) })
				return
			}
			sub.deliver(func() { onChange(profile) })
		}
	}()

	return sub.stop, nil
}

func decodeProfile(doc *firestore.DocumentSnapshot) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, err
	}
	profile.ID = doc.Ref.ID
	return &profile, nil
}
