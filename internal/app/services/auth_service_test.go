package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/app/models/dto"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
	"github.com/yigit/hallsphere/internal/pkg/auth"
)

type authFixture struct {
	svc      AuthService
	users    *fakeUserStore
	profiles *fakeProfileStore
	halls    *fakeHallStore
	rooms    *fakeRoomStore
}

func newAuthFixture() *authFixture {
	users := newFakeUserStore()
	profiles := &fakeProfileStore{}
	halls := &fakeHallStore{halls: map[int64]*models.Hall{
		10: {ID: 10, Name: "Shaheed Salam Hall", Gender: models.HallMale, SecretCode: "salam-secret", TotalCapacity: 400, IsActive: true},
		20: {ID: 20, Name: "Closed Hall", Gender: models.HallMale, SecretCode: "closed-secret", TotalCapacity: 100, IsActive: false},
	}}
	rooms := &fakeRoomStore{rooms: map[int64]*models.Room{
		100: {ID: 100, HallID: 10, RoomNumber: "101", Capacity: 4},
		101: {ID: 101, HallID: 10, RoomNumber: "102", Capacity: 2},
		200: {ID: 200, HallID: 20, RoomNumber: "201", Capacity: 4},
	}}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	svc := NewAuthService(&fakeTxRunner{}, users, profiles, halls, rooms, jwtService)
	return &authFixture{svc: svc, users: users, profiles: profiles, halls: halls, rooms: rooms}
}

func studentReq() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		Name:            "Rahim Uddin",
		Email:           "rahim@university.edu",
		Password:        "Password1!",
		Roll:            "190104",
		Registration:    "2019331004",
		AcademicSession: "2020-2021",
		AdmissionYear:   2020,
		Department:      "CSE",
		HallID:          10,
		RoomID:          100,
		Position:        "A",
	}
}

func TestRegisterStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("inherits a session peer's base expiry date", func(t *testing.T) {
		f := newAuthFixture()
		peer := date(2025, time.June, 30)
		f.profiles.peerExpiry = &peer

		resp, err := f.svc.RegisterStudent(ctx, studentReq())
		require.NoError(t, err)
		assert.NotZero(t, resp.UserID)

		require.Len(t, f.profiles.created, 1)
		profile := f.profiles.created[0]
		require.NotNil(t, profile.BaseExpiryDate)
		assert.True(t, profile.BaseExpiryDate.Equal(peer))
		require.NotNil(t, profile.EffectiveExpiryDate)
		assert.True(t, profile.EffectiveExpiryDate.Equal(peer))
	})

	t.Run("first of the cohort starts without a base date", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.RegisterStudent(ctx, studentReq())
		require.NoError(t, err)

		require.Len(t, f.profiles.created, 1)
		assert.Nil(t, f.profiles.created[0].BaseExpiryDate)
		assert.Nil(t, f.profiles.created[0].EffectiveExpiryDate)
	})

	t.Run("new accounts start pending", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.RegisterStudent(ctx, studentReq())
		require.NoError(t, err)

		user, err := f.users.GetUserByEmail(ctx, "rahim@university.edu")
		require.NoError(t, err)
		assert.Equal(t, models.ApprovalPending, user.ApprovalStatus)
		assert.Equal(t, models.RoleStudent, user.Role)
	})

	t.Run("inactive hall", func(t *testing.T) {
		f := newAuthFixture()
		req := studentReq()
		req.HallID = 20
		req.RoomID = 200

		_, err := f.svc.RegisterStudent(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrHallInactive)
	})

	t.Run("room from another hall", func(t *testing.T) {
		f := newAuthFixture()
		req := studentReq()
		req.RoomID = 200

		_, err := f.svc.RegisterStudent(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrRoomNotInHall)
	})

	t.Run("position beyond room capacity", func(t *testing.T) {
		f := newAuthFixture()
		req := studentReq()
		req.RoomID = 101 // 2-bed room
		req.Position = "C"

		_, err := f.svc.RegisterStudent(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("validation", func(t *testing.T) {
		mutations := map[string]func(*dto.RegisterStudentRequest){
			"bad email":          func(r *dto.RegisterStudentRequest) { r.Email = "not-an-email" },
			"short password":     func(r *dto.RegisterStudentRequest) { r.Password = "short" },
			"bad session":        func(r *dto.RegisterStudentRequest) { r.AcademicSession = "2020" },
			"unknown department": func(r *dto.RegisterStudentRequest) { r.Department = "NOPE" },
			"single-letter name": func(r *dto.RegisterStudentRequest) { r.Name = "R" },
			"oversized name":     func(r *dto.RegisterStudentRequest) { r.Name = strings.Repeat("x", 101) },
			"bad phone":          func(r *dto.RegisterStudentRequest) { phone := "not-digits"; r.Phone = &phone },
		}
		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				f := newAuthFixture()
				req := studentReq()
				mutate(req)
				_, err := f.svc.RegisterStudent(ctx, req)
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.RegisterStudent(ctx, studentReq())
		require.NoError(t, err)
		_, err = f.svc.RegisterStudent(ctx, studentReq())
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestRegisterProvost(t *testing.T) {
	ctx := context.Background()

	provostReq := func() *dto.RegisterProvostRequest {
		return &dto.RegisterProvostRequest{
			Name:       "Dr. Karim",
			Email:      "karim@university.edu",
			Password:   "Password1!",
			HallID:     10,
			SecretCode: "salam-secret",
		}
	}

	t.Run("correct secret registers a pending provost", func(t *testing.T) {
		f := newAuthFixture()

		resp, err := f.svc.RegisterProvost(ctx, provostReq(), models.RoleProvost)
		require.NoError(t, err)
		assert.NotZero(t, resp.UserID)

		user, err := f.users.GetUserByEmail(ctx, "karim@university.edu")
		require.NoError(t, err)
		assert.Equal(t, models.RoleProvost, user.Role)
		assert.Equal(t, models.ApprovalPending, user.ApprovalStatus)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		f := newAuthFixture()
		req := provostReq()
		req.SecretCode = "guess"

		_, err := f.svc.RegisterProvost(ctx, req, models.RoleProvost)
		assert.ErrorIs(t, err, apperrors.ErrInvalidHallSecret)
	})

	t.Run("only staff roles are accepted", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.RegisterProvost(ctx, provostReq(), models.RoleStudent)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	addUser := func(t *testing.T, f *authFixture, status models.ApprovalStatus) {
		t.Helper()
		hashed, err := auth.HashPassword("Password1!")
		require.NoError(t, err)
		f.users.add(&models.User{
			Name:           "Rahim Uddin",
			Email:          "rahim@university.edu",
			Password:       hashed,
			Role:           models.RoleStudent,
			ApprovalStatus: status,
		})
	}

	t.Run("approved user receives a token", func(t *testing.T) {
		f := newAuthFixture()
		addUser(t, f, models.ApprovalApproved)

		resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "rahim@university.edu", Password: "Password1!"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, string(models.RoleStudent), resp.Role)
		assert.Equal(t, int(time.Hour.Seconds()), resp.ExpiresIn)
		assert.Len(t, f.users.lastLogins, 1)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		f := newAuthFixture()
		addUser(t, f, models.ApprovalApproved)

		_, errUnknown := f.svc.Login(ctx, &dto.LoginRequest{Email: "nobody@university.edu", Password: "Password1!"})
		_, errWrongPw := f.svc.Login(ctx, &dto.LoginRequest{Email: "rahim@university.edu", Password: "wrong-password"})
		assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, apperrors.ErrInvalidCredentials)
	})

	t.Run("pending account", func(t *testing.T) {
		f := newAuthFixture()
		addUser(t, f, models.ApprovalPending)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "rahim@university.edu", Password: "Password1!"})
		assert.ErrorIs(t, err, apperrors.ErrAccountPending)
	})

	t.Run("rejected account", func(t *testing.T) {
		f := newAuthFixture()
		addUser(t, f, models.ApprovalRejected)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "rahim@university.edu", Password: "Password1!"})
		assert.ErrorIs(t, err, apperrors.ErrAccountRejected)
	})

	t.Run("former resident", func(t *testing.T) {
		f := newAuthFixture()
		addUser(t, f, models.ApprovalFormer)

		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "rahim@university.edu", Password: "Password1!"})
		assert.ErrorIs(t, err, apperrors.ErrAccountRejected)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("student comes back with profile attached", func(t *testing.T) {
		f := newAuthFixture()
		f.users.add(&models.User{
			Name:           "Rahim Uddin",
			Email:          "rahim@university.edu",
			Role:           models.RoleStudent,
			ApprovalStatus: models.ApprovalApproved,
		})
		expiry := date(2025, time.June, 30)
		f.profiles.profiles = map[int64]*models.StudentProfile{
			1: {UserID: 1, Roll: "190104", EffectiveExpiryDate: &expiry},
		}

		user, err := f.svc.CurrentUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "rahim@university.edu", user.Email)
		require.NotNil(t, user.Profile)
		assert.Equal(t, "190104", user.Profile.Roll)
		require.NotNil(t, user.Profile.EffectiveExpiryDate)
		assert.True(t, user.Profile.EffectiveExpiryDate.Equal(expiry))
	})

	t.Run("staff comes back without a profile", func(t *testing.T) {
		f := newAuthFixture()
		f.users.add(&models.User{
			Name:           "Provost Karim",
			Email:          "karim@university.edu",
			Role:           models.RoleProvost,
			ApprovalStatus: models.ApprovalApproved,
		})

		user, err := f.svc.CurrentUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.RoleProvost, user.Role)
		assert.Nil(t, user.Profile)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.CurrentUser(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
