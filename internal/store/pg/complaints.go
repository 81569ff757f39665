package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"civictrack.org/internal/complaint"
)

const complaintColumns = `id, complaint_id, name, phone, ward, category, description, image_url, status, notes, created_at, updated_at`

func (s *Store) CreateComplaint(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into complaints (id, complaint_id, name, phone, ward, category, description, image_url, status, notes, created_at, updated_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning `+complaintColumns,
		c.ID, c.ComplaintID, c.Name, c.Phone, c.Ward, c.Category, c.Description,
		nullString(c.ImageURL), string(c.Status), nullString(c.Notes), c.CreatedAt, c.UpdatedAt)
	created, err := scanComplaint(row)
	if err != nil {
		if isUniqueViolation(err) {
			return complaint.Complaint{}, fmt.Errorf("%w: duplicate complaint id", complaint.ErrInvalidInput)
		}
		return complaint.Complaint{}, err
	}
	return created, nil
}

func (s *Store) GetComplaint(ctx context.Context, id string) (complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx, `select `+complaintColumns+` from complaints where id = $1`, id)
	return oneComplaint(row)
}

func (s *Store) GetComplaintByTrackingID(ctx context.Context, complaintID string) (complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx, `select `+complaintColumns+` from complaints where complaint_id = $1`, complaintID)
	return oneComplaint(row)
}

func (s *Store) ListComplaints(ctx context.Context, f complaint.Filter) ([]complaint.Complaint, error) {
	var (
		where []string
		args  []any
	)
	if f.Ward != nil {
		args = append(args, *f.Ward)
		where = append(where, fmt.Sprintf("ward = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `select ` + complaintColumns + ` from complaints`
	if len(where) > 0 {
		query += ` where ` + strings.Join(where, " and ")
	}
	query += ` order by created_at desc, id desc`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []complaint.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateComplaintStatus writes status, notes and updated_at in one statement.
func (s *Store) UpdateComplaintStatus(ctx context.Context, id string, u complaint.StatusUpdate) (complaint.Complaint, error) {
	row := s.db.QueryRowContext(ctx, `
		update complaints
		set status = $2, notes = $3, updated_at = $4
		where id = $1
		returning `+complaintColumns,
		id, string(u.Status), nullString(u.Notes), u.UpdatedAt)
	return oneComplaint(row)
}

func oneComplaint(row *sql.Row) (complaint.Complaint, error) {
	c, err := scanComplaint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	if err != nil {
		return complaint.Complaint{}, err
	}
	return c, nil
}

func scanComplaint(row scanner) (complaint.Complaint, error) {
	var (
		c      complaint.Complaint
		status string
		image  sql.NullString
		notes  sql.NullString
	)
	if err := row.Scan(&c.ID, &c.ComplaintID, &c.Name, &c.Phone, &c.Ward, &c.Category, &c.Description,
		&image, &status, &notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return complaint.Complaint{}, err
	}
	c.Status = complaint.Status(status)
	c.ImageURL = stringPtr(image)
	c.Notes = stringPtr(notes)
	return c, nil
}
