package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"complaint-desk/internal/model"
	"complaint-desk/pkg/apierror"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var apiErr *apierror.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, apierror.CodeValidation, apiErr.Code)
	require.Equal(t, 400, apiErr.HTTPStatus)
	return apiErr.Fields
}

func TestValidator_Struct(t *testing.T) {
	t.Parallel()
	v := New()

	t.Run("accepts a complete registration", func(t *testing.T) {
		err := v.Struct(model.RegisterRequest{
			Email: "ann@example.com", Password: "secret", FirstName: "Ann", LastName: "Lee", Phone: "0888123456",
		})
		require.NoError(t, err)
	})

	t.Run("reports fields by json name", func(t *testing.T) {
		fields := fieldsOf(t, v.Struct(model.RegisterRequest{Email: "not-an-email", FirstName: "A"}))
		require.Equal(t, "must be a valid email address", fields["email"])
		require.Equal(t, "is required", fields["password"])
		require.Equal(t, "must be at least 2 characters", fields["first_name"])
		require.Equal(t, "is required", fields["last_name"])
		require.Contains(t, fields, "phone")
	})

	t.Run("requires a certificate for approvers only", func(t *testing.T) {
		staff := model.CreateStaffRequest{
			Email: "appr@example.com", Password: "pw", FirstName: "Bob", LastName: "Ray", Role: "approver",
		}
		fields := fieldsOf(t, v.Struct(staff))
		require.Equal(t, "is required when role is approver", fields["certificate"])

		staff.Role = "admin"
		require.NoError(t, v.Struct(staff))

		staff.Role = "complainer"
		fields = fieldsOf(t, v.Struct(staff))
		require.Equal(t, "must be one of: admin, approver", fields["role"])
	})

	t.Run("rejects reusing the old password", func(t *testing.T) {
		fields := fieldsOf(t, v.Struct(model.ChangePasswordRequest{OldPassword: "same", NewPassword: "same"}))
		require.Equal(t, "cannot be the same as old_password", fields["new_password"])
	})

	t.Run("needs either a photo url or an inline photo", func(t *testing.T) {
		fields := fieldsOf(t, v.Struct(model.CreateComplaintRequest{Title: "t", Description: "d", Amount: 1}))
		require.Equal(t, "is required when photo is missing", fields["photo_url"])
		require.Equal(t, "is required when photo_url is missing", fields["photo"])

		require.NoError(t, v.Struct(model.CreateComplaintRequest{
			Title: "t", Description: "d", Amount: 1, PhotoURL: "https://img.example.com/a.png",
		}))

		fields = fieldsOf(t, v.Struct(model.CreateComplaintRequest{
			Title: "t", Description: "d", Amount: 1, Photo: "aGVsbG8=",
		}))
		require.Equal(t, "is required together with photo", fields["photo_extension"])
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		fields := fieldsOf(t, v.Struct(model.CreateComplaintRequest{
			Title: "t", Description: "d", PhotoURL: "https://img.example.com/a.png", Amount: -5,
		}))
		require.Equal(t, "must be greater than 0", fields["amount"])
	})
}

func TestSnake(t *testing.T) {
	t.Parallel()

	require.Equal(t, "photo_url", snake("PhotoURL"))
	require.Equal(t, "old_password", snake("OldPassword"))
	require.Equal(t, "photo", snake("Photo"))
}
