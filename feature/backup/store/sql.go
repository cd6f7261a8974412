package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"backup-manager/feature/backup/models"
	"backup-manager/feature/backup/reconcile"

	"gorm.io/gorm"
)

// SQLTarget implements Target over the GORM replica connection.
type SQLTarget struct {
	db *gorm.DB
}

// NewSQLTarget creates a Target backed by the replica database.
func NewSQLTarget(db *gorm.DB) *SQLTarget {
	return &SQLTarget{db: db}
}

// Models returns the replica schema for migration.
func Models() []any {
	return []any{&models.Build{}, &models.UserProfile{}, &models.Order{}, &models.Inquiry{}}
}

func (t *SQLTarget) BuildTarget() reconcile.Accessor   { return &buildAccessor{db: t.db} }
func (t *SQLTarget) UserTarget() reconcile.Accessor    { return &userAccessor{db: t.db} }
func (t *SQLTarget) OrderTarget() reconcile.Accessor   { return &orderAccessor{db: t.db} }
func (t *SQLTarget) InquiryTarget() reconcile.Accessor { return &inquiryAccessor{db: t.db} }

// Counts fetches record counts for all four replica tables.
func (t *SQLTarget) Counts(ctx context.Context) (models.Counts, error) {
	var counts models.Counts
	for _, c := range []struct {
		model any
		dest  *int64
	}{
		{&models.Build{}, &counts.Builds},
		{&models.UserProfile{}, &counts.Users},
		{&models.Order{}, &counts.Orders},
		{&models.Inquiry{}, &counts.Inquiries},
	} {
		if err := t.db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return models.Counts{}, fmt.Errorf("failed to count replica records: %w", err)
		}
	}
	return counts, nil
}

// Clear deletes all rows from the replica tables. Orders go first so the
// structural reference to user profiles never dangles mid-operation.
func (t *SQLTarget) Clear(ctx context.Context) error {
	for _, model := range []any{&models.Order{}, &models.Build{}, &models.Inquiry{}, &models.UserProfile{}} {
		err := t.db.WithContext(ctx).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear replica table: %w", err)
		}
	}
	return nil
}

// parseIntID converts a reconcile identity back to an integer primary key.
func parseIntID(identity string) (int, error) {
	id, err := strconv.Atoi(identity)
	if err != nil {
		return 0, fmt.Errorf("invalid integer identity %q: %w", identity, err)
	}
	return id, nil
}

type buildAccessor struct {
	db *gorm.DB
}

func (a *buildAccessor) ExistsByIdentity(ctx context.Context, identity string) (bool, error) {
	id, err := parseIntID(identity)
	if err != nil {
		return false, err
	}
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Build{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Builds have no business key distinct from their id, so the natural key
// lookup mirrors the identity lookup and the collision branch never fires.
func (a *buildAccessor) FindByNaturalKey(ctx context.Context, rec reconcile.Record) (string, bool, error) {
	found, err := a.ExistsByIdentity(ctx, rec.NaturalKey())
	return rec.NaturalKey(), found, err
}

func (a *buildAccessor) Insert(ctx context.Context, rec reconcile.Record) error {
	b, ok := rec.(*models.Build)
	if !ok {
		return fmt.Errorf("unexpected record type %T for build target", rec)
	}
	return a.db.WithContext(ctx).Create(b).Error
}

func (a *buildAccessor) InsertDisambiguated(ctx context.Context, rec reconcile.Record) error {
	return a.Insert(ctx, rec)
}

func (a *buildAccessor) Update(ctx context.Context, rec reconcile.Record) error {
	b, ok := rec.(*models.Build)
	if !ok {
		return fmt.Errorf("unexpected record type %T for build target", rec)
	}
	return a.db.WithContext(ctx).Model(&models.Build{}).Where("id = ?", b.ID).Updates(map[string]any{
		"name":        b.Name,
		"cpu":         b.CPU,
		"gpu":         b.GPU,
		"ram":         b.RAM,
		"storage":     b.Storage,
		"price_cents": b.PriceCents,
		"description": b.Description,
		"updated_at":  b.UpdatedAt,
	}).Error
}

type userAccessor struct {
	db *gorm.DB
}

func (a *userAccessor) ExistsByIdentity(ctx context.Context, identity string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.UserProfile{}).Where("id = ?", identity).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *userAccessor) FindByNaturalKey(ctx context.Context, rec reconcile.Record) (string, bool, error) {
	found, err := a.ExistsByIdentity(ctx, rec.NaturalKey())
	return rec.NaturalKey(), found, err
}

func (a *userAccessor) Insert(ctx context.Context, rec reconcile.Record) error {
	u, ok := rec.(*models.UserProfile)
	if !ok {
		return fmt.Errorf("unexpected record type %T for user target", rec)
	}
	return a.db.WithContext(ctx).Create(u).Error
}

func (a *userAccessor) InsertDisambiguated(ctx context.Context, rec reconcile.Record) error {
	return a.Insert(ctx, rec)
}

func (a *userAccessor) Update(ctx context.Context, rec reconcile.Record) error {
	u, ok := rec.(*models.UserProfile)
	if !ok {
		return fmt.Errorf("unexpected record type %T for user target", rec)
	}
	fields := map[string]any{
		"email":        u.Email,
		"display_name": u.DisplayName,
		"updated_at":   u.UpdatedAt,
	}
	// A real profile from the primary store supersedes a synthesized
	// placeholder; a placeholder never downgrades a real profile.
	if !u.Placeholder {
		fields["placeholder"] = false
	}
	return a.db.WithContext(ctx).Model(&models.UserProfile{}).Where("id = ?", u.ID).Updates(fields).Error
}

type orderAccessor struct {
	db *gorm.DB
}

func (a *orderAccessor) ExistsByIdentity(ctx context.Context, identity string) (bool, error) {
	id, err := parseIntID(identity)
	if err != nil {
		return false, err
	}
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *orderAccessor) FindByNaturalKey(ctx context.Context, rec reconcile.Record) (string, bool, error) {
	var existing models.Order
	err := a.db.WithContext(ctx).
		Select("id").
		Where("order_number = ?", rec.NaturalKey()).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return strconv.Itoa(existing.ID), true, nil
}

func (a *orderAccessor) Insert(ctx context.Context, rec reconcile.Record) error {
	o, ok := rec.(*models.Order)
	if !ok {
		return fmt.Errorf("unexpected record type %T for order target", rec)
	}
	return a.db.WithContext(ctx).Create(o).Error
}

// InsertDisambiguated writes the order under "<orderNumber>-<id>" so two
// source orders sharing a number both survive in the replica.
func (a *orderAccessor) InsertDisambiguated(ctx context.Context, rec reconcile.Record) error {
	o, ok := rec.(*models.Order)
	if !ok {
		return fmt.Errorf("unexpected record type %T for order target", rec)
	}
	dup := *o
	dup.OrderNumber = reconcile.DisambiguatedKey(o.OrderNumber, o.Identity())
	return a.db.WithContext(ctx).Create(&dup).Error
}

func (a *orderAccessor) Update(ctx context.Context, rec reconcile.Record) error {
	o, ok := rec.(*models.Order)
	if !ok {
		return fmt.Errorf("unexpected record type %T for order target", rec)
	}
	return a.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"order_number":   o.OrderNumber,
		"user_id":        o.UserID,
		"customer_name":  o.CustomerName,
		"customer_email": o.CustomerEmail,
		"total_cents":    o.TotalCents,
		"status":         o.Status,
		"updated_at":     o.UpdatedAt,
	}).Error
}

type inquiryAccessor struct {
	db *gorm.DB
}

func (a *inquiryAccessor) ExistsByIdentity(ctx context.Context, identity string) (bool, error) {
	id, err := parseIntID(identity)
	if err != nil {
		return false, err
	}
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByNaturalKey matches the exact (name, email, budget, use-case) tuple.
// Case-sensitive, no fuzzy matching.
func (a *inquiryAccessor) FindByNaturalKey(ctx context.Context, rec reconcile.Record) (string, bool, error) {
	q, ok := rec.(*models.Inquiry)
	if !ok {
		return "", false, fmt.Errorf("unexpected record type %T for inquiry target", rec)
	}
	var existing models.Inquiry
	err := a.db.WithContext(ctx).
		Select("id").
		Where("name = ? AND email = ? AND budget = ? AND use_case = ?", q.Name, q.Email, q.Budget, q.UseCase).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return strconv.Itoa(existing.ID), true, nil
}

func (a *inquiryAccessor) Insert(ctx context.Context, rec reconcile.Record) error {
	q, ok := rec.(*models.Inquiry)
	if !ok {
		return fmt.Errorf("unexpected record type %T for inquiry target", rec)
	}
	return a.db.WithContext(ctx).Create(q).Error
}

// InsertDisambiguated suffixes the identity onto the name column, the
// closest analog of a natural key an inquiry has.
func (a *inquiryAccessor) InsertDisambiguated(ctx context.Context, rec reconcile.Record) error {
	q, ok := rec.(*models.Inquiry)
	if !ok {
		return fmt.Errorf("unexpected record type %T for inquiry target", rec)
	}
	dup := *q
	dup.Name = reconcile.DisambiguatedKey(q.Name, q.Identity())
	return a.db.WithContext(ctx).Create(&dup).Error
}

func (a *inquiryAccessor) Update(ctx context.Context, rec reconcile.Record) error {
	q, ok := rec.(*models.Inquiry)
	if !ok {
		return fmt.Errorf("unexpected record type %T for inquiry target", rec)
	}
	return a.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", q.ID).Updates(map[string]any{
		"name":       q.Name,
		"email":      q.Email,
		"budget":     q.Budget,
		"use_case":   q.UseCase,
		"message":    q.Message,
		"updated_at": q.UpdatedAt,
	}).Error
}
