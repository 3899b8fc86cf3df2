package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-leaveco/internal/auth/errors"
	"go-leaveco/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employees employee.Repository
}

func NewService(employees employee.Repository) Service {
	return &service{employees: employees}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	emp, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Role masuk ke JWT; enforcement tetap di Casbin.
	accessToken, err := generateToken(emp.ID.String(), emp.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := generateToken(emp.ID.String(), emp.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return accessToken, refreshToken, mapToAuthResponse(emp), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// Re-read the employee so a role change invalidates stale refresh tokens.
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	newAccessToken, err := generateToken(emp.ID.String(), emp.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefreshToken, err := generateToken(emp.ID.String(), emp.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(emp), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	resp := mapToAuthResponse(emp)
	return &resp, nil
}

func generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(emp *employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: emp.ID.String(),
		NIK:        emp.NIK,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
	}
}
