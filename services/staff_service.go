package services

import (
	"context"
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/querycache"
	"strings"
)

// StaffService builds the admin staff views and manages booking assignments
type StaffService struct {
	roleRepo       repository.UserRoleRepositoryInterface
	profileRepo    repository.ProfileRepositoryInterface
	staffRepo      repository.StaffRepositoryInterface
	catalogRepo    repository.CatalogRepositoryInterface
	bookingRepo    repository.BookingRepositoryInterface
	assignmentRepo repository.AssignmentRepositoryInterface
	cache          querycache.Cache
	logger         logger.Logger
}

func NewStaffService(repos repository.RepositoryContainerInterface, cache querycache.Cache, logger logger.Logger) *StaffService {
	return &StaffService{
		roleRepo:       repos.GetUserRoleRepository(),
		profileRepo:    repos.GetProfileRepository(),
		staffRepo:      repos.GetStaffRepository(),
		catalogRepo:    repos.GetCatalogRepository(),
		bookingRepo:    repos.GetBookingRepository(),
		assignmentRepo: repos.GetAssignmentRepository(),
		cache:          cache,
		logger:         logger,
	}
}

// ListStaff joins every staff user with profile, details and panchayath
// coverage, in role order. Users without a details row are reported
// available with unknown skills.
func (s *StaffService) ListStaff(ctx context.Context) ([]*models.StaffMember, error) {
	return cachedQuery(ctx, s.cache, s.logger, querycache.Key(querycache.StaffList), func() ([]*models.StaffMember, error) {
		return s.loadStaff(ctx)
	})
}

func (s *StaffService) loadStaff(ctx context.Context) ([]*models.StaffMember, error) {
	staffIDs, err := s.roleRepo.ListUserIDsByRole(ctx, models.UserRoleStaff)
	if err != nil {
		return nil, err
	}
	if len(staffIDs) == 0 {
		return []*models.StaffMember{}, nil
	}

	profiles, err := s.profileRepo.GetProfilesByUserIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	details, err := s.staffRepo.GetDetailsByUserIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	coverage, err := s.staffRepo.ListPanchayathAssignmentsByStaff(ctx, staffIDs)
	if err != nil {
		return nil, err
	}

	var panchayathIDs []string
	for _, rows := range coverage {
		for _, row := range rows {
			panchayathIDs = append(panchayathIDs, row.PanchayathID)
		}
	}
	panchayaths, err := s.catalogRepo.GetPanchayathsByIDs(ctx, panchayathIDs)
	if err != nil {
		return nil, err
	}

	members := make([]*models.StaffMember, 0, len(staffIDs))
	for _, id := range staffIDs {
		member := &models.StaffMember{
			UserID:                id,
			IsAvailable:           true,
			PanchayathAssignments: []models.StaffCoverage{},
		}

		if d, ok := details[id]; ok {
			member.IsAvailable = d.IsAvailable
			member.Skills = d.Skills
		}

		if p, ok := profiles[id]; ok {
			member.Profile = &models.StaffProfile{
				FullName: p.FullName,
				Email:    p.Email,
				Phone:    p.Phone,
			}
		}

		for _, row := range coverage[id] {
			c := models.StaffCoverage{
				PanchayathID: row.PanchayathID,
				WardNumbers:  row.WardNumbers,
			}
			if p, ok := panchayaths[row.PanchayathID]; ok {
				c.Panchayath = &models.PanchayathRef{Name: p.Name}
			}
			member.PanchayathAssignments = append(member.PanchayathAssignments, c)
		}

		members = append(members, member)
	}

	return members, nil
}

// StaffByPanchayath lists the staff covering a panchayath
func (s *StaffService) StaffByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffContact, error) {
	if panchayathID == "" {
		return []*models.StaffContact{}, nil
	}

	key := querycache.Key(querycache.StaffByPanchayath, panchayathID)
	return cachedQuery(ctx, s.cache, s.logger, key, func() ([]*models.StaffContact, error) {
		rows, err := s.staffRepo.ListPanchayathAssignmentsByPanchayath(ctx, panchayathID)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return []*models.StaffContact{}, nil
		}

		ids := make([]string, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if !seen[row.StaffUserID] {
				seen[row.StaffUserID] = true
				ids = append(ids, row.StaffUserID)
			}
		}

		profiles, err := s.profileRepo.GetProfilesByUserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		contacts := make([]*models.StaffContact, 0, len(ids))
		for _, id := range ids {
			p, ok := profiles[id]
			if !ok {
				continue
			}
			contacts = append(contacts, &models.StaffContact{
				UserID:   p.UserID,
				FullName: p.FullName,
				Phone:    p.Phone,
			})
		}
		return contacts, nil
	})
}

// AssignStaffToBooking replaces the booking's assignments with one pending
// assignment per staff user
func (s *StaffService) AssignStaffToBooking(ctx context.Context, bookingID string, staffUserIDs []string) ([]*models.BookingStaffAssignment, error) {
	if bookingID == "" {
		return nil, validationError("booking_id", "Booking is required")
	}

	ids := make([]string, 0, len(staffUserIDs))
	seen := make(map[string]bool, len(staffUserIDs))
	for _, id := range staffUserIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, validationError("staff_user_ids", "At least one staff member is required")
	}

	if _, err := s.bookingRepo.GetBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.DeleteByBooking(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("failed to clear existing assignments: %w", err)
	}

	created := make([]*models.BookingStaffAssignment, 0, len(ids))
	for _, id := range ids {
		a, err := s.assignmentRepo.CreateAssignment(ctx, &models.BookingStaffAssignment{
			BookingID:   bookingID,
			StaffUserID: id,
			Status:      models.AssignmentStatusPending,
		})
		if err != nil {
			invalidate(ctx, s.cache, s.logger, querycache.Bookings, querycache.StaffAssignments, querycache.MyJobs, querycache.AvailableJobs)
			return nil, fmt.Errorf("failed to assign staff %s: %w", id, err)
		}
		created = append(created, a)
	}

	invalidate(ctx, s.cache, s.logger, querycache.Bookings, querycache.StaffAssignments, querycache.MyJobs, querycache.AvailableJobs)

	s.logger.Infof("Assigned %d staff to booking %s", len(created), bookingID)
	return created, nil
}

// UpdateAssignmentStatus records a response to an assignment. Staff may only
// answer their own assignments; admins may answer any.
func (s *StaffService) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status models.AssignmentStatus, actor *models.JWTClaims) (*models.BookingStaffAssignment, error) {
	if status != models.AssignmentStatusAccepted && status != models.AssignmentStatusRejected {
		return nil, validationError("status", "Status must be accepted or rejected")
	}

	current, err := s.assignmentRepo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if actor != nil && !actor.HasRole(models.UserRoleAdmin) && current.StaffUserID != actor.UserID {
		return nil, fmt.Errorf("assignment %s belongs to another staff member: %w", assignmentID, models.ErrForbidden)
	}

	updated, err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, status)
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, s.logger,
		querycache.Bookings, querycache.StaffAssignments, querycache.MyJobs, querycache.AvailableJobs)
	return updated, nil
}

// UpdateStaffDetails sets availability and skills, creating the row if needed
func (s *StaffService) UpdateStaffDetails(ctx context.Context, userID string, req *models.UpdateStaffDetailsRequest) (*models.StaffDetails, error) {
	if userID == "" {
		return nil, validationError("user_id", "Staff user is required")
	}
	if req.IsAvailable == nil {
		return nil, validationError("is_available", "Availability is required")
	}

	skills := make([]string, 0, len(req.Skills))
	seen := make(map[string]bool, len(req.Skills))
	for _, skill := range req.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	details, err := s.staffRepo.UpsertDetails(ctx, &models.StaffDetails{
		UserID:      userID,
		IsAvailable: *req.IsAvailable,
		Skills:      skills,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update staff details: %w", err)
	}

	invalidate(ctx, s.cache, s.logger, querycache.StaffList, querycache.StaffByPanchayath)
	return details, nil
}
