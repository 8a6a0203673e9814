package service_test

import (
	"testing"

	"schedly/cmd/internal/pagination"
	"schedly/cmd/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrantService(fx *fixture) *service.DefaultRegistrantService {
	return service.NewRegistrantService(fx.regRepo, validator.New(), fx.dispatcher)
}

func TestCreateRegistrant(t *testing.T) {
	t.Run("legacy and iso birth dates land on the same value", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		legacy, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Ana Silva",
			Email:     "ana@example.com",
			Phone:     "555-0101",
			BirthDate: "15/08/1985",
		})
		require.Nil(t, apierr)

		iso, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Bia Costa",
			Email:     "bia@example.com",
			Phone:     "555-0102",
			BirthDate: "1985-08-15",
		})
		require.Nil(t, apierr)

		assert.Equal(t, "1985-08-15", legacy.BirthDate)
		assert.Equal(t, legacy.BirthDate, iso.BirthDate)
	})

	t.Run("email is normalized and duplicates rejected", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		created, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Ana Silva",
			Email:     "  Ana@Example.COM ",
			Phone:     "555-0101",
			BirthDate: "1985-08-15",
		})
		require.Nil(t, apierr)
		assert.Equal(t, "ana@example.com", created.Email)

		_, apierr = regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Other Ana",
			Email:     "ANA@example.com",
			Phone:     "555-0199",
			BirthDate: "1990-01-01",
		})
		require.NotNil(t, apierr)
		assert.Equal(t, 409, apierr.Code())
	})

	t.Run("welcome message is dispatched", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		_, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Ana Silva",
			Email:     "ana@example.com",
			Phone:     "555-0101",
			BirthDate: "1985-08-15",
		})
		require.Nil(t, apierr)

		require.Len(t, fx.dispatcher.messages, 1)
		msg := fx.dispatcher.messages[0]
		assert.Equal(t, "ana@example.com", msg.Recipient)
		assert.Equal(t, "registrant_welcome", msg.Template)
		assert.Equal(t, "Ana Silva", msg.Context["Name"])
	})

	t.Run("validation failures", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		cases := []*service.RegistrantRequest{
			{Email: "a@b.c", Phone: "1", BirthDate: "1990-01-01"},                  // missing name
			{Name: "A", Email: "a@b.c", Phone: "1", BirthDate: "1990-01-01"},      // name too short
			{Name: "Ana", Phone: "1", BirthDate: "1990-01-01"},                    // missing email
			{Name: "Ana", Email: "nope", Phone: "1", BirthDate: "1990-01-01"},     // bad email
			{Name: "Ana", Email: "a@b.c", Phone: "1", BirthDate: "last tuesday"},  // bad birth date
		}
		for i, req := range cases {
			_, apierr := regs.CreateRegistrant(req)
			require.NotNil(t, apierr, "case %d", i)
			assert.Equal(t, 400, apierr.Code(), "case %d", i)
		}
		assert.Empty(t, fx.dispatcher.messages)
	})
}

func TestUpdateRegistrant(t *testing.T) {
	t.Run("partial merge", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		created, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name:      "Ana Silva",
			Email:     "ana@example.com",
			Phone:     "555-0101",
			BirthDate: "1985-08-15",
		})
		require.Nil(t, apierr)

		phone := "555-0202"
		updated, apierr := regs.UpdateRegistrant(created.ID, &service.RegistrantUpdateRequest{Phone: &phone})
		require.Nil(t, apierr)
		assert.Equal(t, "555-0202", updated.Phone)
		assert.Equal(t, "Ana Silva", updated.Name)
		assert.Equal(t, "ana@example.com", updated.Email)
		assert.Equal(t, "1985-08-15", updated.BirthDate)
	})

	t.Run("email change to a taken address", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		_, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name: "Ana", Email: "ana@example.com", Phone: "1", BirthDate: "1990-01-01",
		})
		require.Nil(t, apierr)
		bia, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name: "Bia", Email: "bia@example.com", Phone: "2", BirthDate: "1990-01-01",
		})
		require.Nil(t, apierr)

		email := "ana@example.com"
		_, apierr = regs.UpdateRegistrant(bia.ID, &service.RegistrantUpdateRequest{Email: &email})
		require.NotNil(t, apierr)
		assert.Equal(t, 409, apierr.Code())
	})

	t.Run("re-submitting the same email is not a conflict", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		ana, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name: "Ana", Email: "ana@example.com", Phone: "1", BirthDate: "1990-01-01",
		})
		require.Nil(t, apierr)

		email := "Ana@Example.com"
		updated, apierr := regs.UpdateRegistrant(ana.ID, &service.RegistrantUpdateRequest{Email: &email})
		require.Nil(t, apierr)
		assert.Equal(t, "ana@example.com", updated.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		fx := newFixture(t)
		regs := newRegistrantService(fx)

		name := "Ghost"
		_, apierr := regs.UpdateRegistrant(404, &service.RegistrantUpdateRequest{Name: &name})
		require.NotNil(t, apierr)
		assert.Equal(t, 404, apierr.Code())
	})
}

func TestDeleteRegistrant(t *testing.T) {
	fx := newFixture(t)
	regs := newRegistrantService(fx)

	ana, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
		Name: "Ana", Email: "ana@example.com", Phone: "1", BirthDate: "1990-01-01",
	})
	require.Nil(t, apierr)

	require.Nil(t, regs.DeleteRegistrant(ana.ID))

	_, apierr = regs.GetRegistrant(ana.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())

	apierr = regs.DeleteRegistrant(ana.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestListRegistrants(t *testing.T) {
	fx := newFixture(t)
	regs := newRegistrantService(fx)

	for _, r := range []struct{ name, email string }{
		{"Ana Silva", "ana@example.com"},
		{"Bruno Costa", "bruno@example.com"},
		{"Carla Anapolis", "carla@other.org"},
	} {
		_, apierr := regs.CreateRegistrant(&service.RegistrantRequest{
			Name: r.name, Email: r.email, Phone: "555-0100", BirthDate: "1990-01-01",
		})
		require.Nil(t, apierr)
	}

	page, apierr := regs.ListRegistrants(pagination.Params{Limit: 10, Filter: "ana"})
	require.Nil(t, apierr)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Registrants, 2)
}
