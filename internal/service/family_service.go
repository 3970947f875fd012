package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"familyhub/internal/models"
	"familyhub/internal/security"
)

var (
	ErrInvitationInvalid = errors.New("invitation is invalid")
	ErrInvitationExpired = errors.New("invitation has expired")
	ErrInvitationUsed    = errors.New("invitation has already been used")
)

// FamilyService handles family membership and invitations
type FamilyService struct {
	users       UserStore
	families    FamilyStore
	invitations InvitationStore
	email       *EmailService
	signer      *security.TokenSigner
	inviteTTL   time.Duration
}

// NewFamilyService creates a new family service
func NewFamilyService(users UserStore, families FamilyStore, invitations InvitationStore, email *EmailService, signer *security.TokenSigner, inviteTTL time.Duration) *FamilyService {
	return &FamilyService{
		users:       users,
		families:    families,
		invitations: invitations,
		email:       email,
		signer:      signer,
		inviteTTL:   inviteTTL,
	}
}

// GetFamilyMembers returns all users belonging to a family
func (s *FamilyService) GetFamilyMembers(familyID string) ([]models.User, error) {
	users, err := s.users.GetUsersByFamily(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}
	return users, nil
}

// InviteToFamily creates an invitation for an email address to join a
// family and mails a signed invite link when the email service is enabled.
// The inviter must be a PARENT-or-higher member of the family. The signed
// token is returned so callers can also hand it over out of band.
func (s *FamilyService) InviteToFamily(ctx context.Context, email, familyID, inviterID string) (string, error) {
	inviter, err := s.users.GetUserByID(inviterID)
	if err != nil {
		return "", fmt.Errorf("failed to load inviter: %w", err)
	}
	if !CheckPermission(inviter, models.RoleParent) {
		log.Printf("Invitation refused: user %s lacks parent privileges", inviterID)
		return "", ErrPermissionDenied
	}

	family, err := s.families.GetFamilyByID(familyID)
	if err != nil {
		return "", fmt.Errorf("failed to load family: %w", err)
	}
	if family == nil {
		return "", fmt.Errorf("family %s: %w", familyID, ErrNotFound)
	}
	isMember, err := s.families.IsFamilyMember(inviterID, familyID)
	if err != nil {
		return "", fmt.Errorf("failed to check family membership: %w", err)
	}
	if !isMember {
		log.Printf("Invitation refused: user %s is not a member of family %s", inviterID, familyID)
		return "", ErrPermissionDenied
	}

	expiresAt := time.Now().Add(s.inviteTTL)
	inv, err := s.invitations.CreateInvitation(email, familyID, inviterID, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to create invitation: %w", err)
	}

	token, err := s.signer.SignInvite(inv.Code, email, familyID, expiresAt)
	if err != nil {
		return "", err
	}

	if s.email != nil {
		if err := s.email.SendFamilyInvitationEmail(ctx, email, family.Name, inviter.DisplayName, token); err != nil {
			// The invitation stays valid; the token can still be shared directly
			log.Printf("Warning: failed to send invitation email to %s: %v", email, err)
		}
	}

	log.Printf("Invitation sent to %s for family %s by user %s", email, familyID, inviterID)
	return token, nil
}

// RedeemInvitation verifies a signed invite token and returns the matching
// invitation when it is still valid
func (s *FamilyService) RedeemInvitation(token string) (*models.Invitation, error) {
	claims, err := s.signer.VerifyInvite(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return nil, ErrInvitationExpired
		}
		return nil, ErrInvitationInvalid
	}

	inv, err := s.invitations.GetInvitationByCode(claims.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}
	if inv == nil {
		return nil, ErrInvitationInvalid
	}
	if inv.IsUsed() {
		return nil, ErrInvitationUsed
	}
	if inv.IsExpired() {
		return nil, ErrInvitationExpired
	}

	return inv, nil
}

// CompleteInvitation marks an invitation as redeemed by the given user
func (s *FamilyService) CompleteInvitation(code, userID string) error {
	if err := s.invitations.MarkInvitationUsed(code, userID); err != nil {
		return fmt.Errorf("failed to complete invitation: %w", err)
	}
	return nil
}
