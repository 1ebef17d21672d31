package establishment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"mapa-saude-api/internal/doctor"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DB per test name so data doesn't leak across tests
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&Establishment{}, &Review{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}

	return db
}

type stubGeocoder struct {
	lat, lng float64
	err      error
	calls    int
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	g.calls++
	if g.err != nil {
		return 0, 0, g.err
	}
	return g.lat, g.lng, nil
}

type stubRoster struct {
	doctors []doctor.Doctor
	err     error
}

func (r *stubRoster) ListActiveByEstablishment(ctx context.Context, estabelecimentoID int) ([]doctor.Doctor, error) {
	return r.doctors, r.err
}

func seedEstablishment(t *testing.T, db *gorm.DB, adminID int, ativo bool) *Establishment {
	t.Helper()
	est := Establishment{
		Nome:                 "Clínica Vida",
		Tipo:                 TipoClinica,
		EnderecoCompleto:     "Rua das Flores, 100, Votuporanga - SP",
		Telefone:             "(17) 3421-1234",
		HorarioFuncionamento: "Seg-Sex 8h-18h",
		ConveniosGerais:      pq.StringArray{"Unimed"},
		AdminID:              adminID,
		Ativo:                ativo,
	}
	if err := db.Create(&est).Error; err != nil {
		t.Fatalf("seed establishment: %v", err)
	}
	// The ativo column carries a DB default, so a zero-value false is
	// skipped on insert and has to be forced explicitly.
	if !ativo {
		if err := db.Model(&est).Update("ativo", false).Error; err != nil {
			t.Fatalf("seed establishment: %v", err)
		}
		est.Ativo = false
	}
	return &est
}

func TestEstablishmentService_GetByID_Found(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seeded := seedEstablishment(t, db, 1, true)

	got, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if got.Nome != "Clínica Vida" {
		t.Fatalf("unexpected establishment: %+v", got)
	}
}

func TestEstablishmentService_GetByID_InactiveStillReachable(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seeded := seedEstablishment(t, db, 1, false)

	got, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if got.Ativo {
		t.Fatalf("expected inactive establishment, got %+v", got)
	}
}

func TestEstablishmentService_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	_, err := svc.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestEstablishmentService_GetDetail_ComposesRosterAndRating(t *testing.T) {
	db := newTestDB(t)
	roster := &stubRoster{doctors: []doctor.Doctor{
		{ID: 1, Nome: "Dra. Ana Souza", CRM: "123456"},
	}}
	svc := &Service{DB: db, Roster: roster}
	seeded := seedEstablishment(t, db, 1, true)

	for _, nota := range []int{4, 5} {
		err := svc.AddReview(context.Background(), seeded.ID, ReviewInput{
			Usuario: "Paciente", Nota: nota,
		})
		if err != nil {
			t.Fatalf("add review: %v", err)
		}
	}

	detail, err := svc.GetDetail(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if detail.NotaMedia != 4.5 {
		t.Fatalf("expected nota_media 4.5, got %v", detail.NotaMedia)
	}
	if len(detail.Medicos) != 1 || detail.Medicos[0].Nome != "Dra. Ana Souza" {
		t.Fatalf("unexpected roster: %#v", detail.Medicos)
	}
}

func TestEstablishmentService_GetDetail_NoReviews_RatingZero(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db, Roster: &stubRoster{}}
	seeded := seedEstablishment(t, db, 1, true)

	detail, err := svc.GetDetail(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if detail.NotaMedia != 0 {
		t.Fatalf("expected nota_media 0, got %v", detail.NotaMedia)
	}
}

func TestEstablishmentService_GetDetail_RatingRoundsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db, Roster: &stubRoster{}}
	seeded := seedEstablishment(t, db, 1, true)

	// avg(5,5,4) = 4.666... -> 4.7
	for _, nota := range []int{5, 5, 4} {
		if err := svc.AddReview(context.Background(), seeded.ID, ReviewInput{Usuario: "P", Nota: nota}); err != nil {
			t.Fatalf("add review: %v", err)
		}
	}

	detail, err := svc.GetDetail(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if detail.NotaMedia != 4.7 {
		t.Fatalf("expected nota_media 4.7, got %v", detail.NotaMedia)
	}
}

func TestEstablishmentService_ActiveByAdmin_IgnoresInactive(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seedEstablishment(t, db, 7, false)

	_, err := svc.ActiveByAdmin(context.Background(), 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	active := seedEstablishment(t, db, 7, true)
	got, err := svc.ActiveByAdmin(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if got.ID != active.ID {
		t.Fatalf("expected id %d, got %d", active.ID, got.ID)
	}
}

func TestEstablishmentService_SaveForAdmin_Create_GeocodesAddress(t *testing.T) {
	db := newTestDB(t)
	geo := &stubGeocoder{lat: -20.42, lng: -49.97}
	svc := &Service{DB: db, Geo: geo}

	est, err := svc.SaveForAdmin(context.Background(), 3, TipoClinica, SaveInput{
		Nome:                 "Clínica Nova",
		EnderecoCompleto:     "Av. Brasil, 200, Votuporanga - SP",
		Telefone:             "(17) 99876-5432",
		HorarioFuncionamento: "Seg-Sab 7h-19h",
		ConveniosGerais:      []string{"Unimed", "Amil"},
	})
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if est.ID == 0 {
		t.Fatalf("expected persisted id")
	}
	if est.Latitude == nil || *est.Latitude != -20.42 {
		t.Fatalf("expected geocoded latitude, got %#v", est.Latitude)
	}
	if geo.calls != 1 {
		t.Fatalf("expected 1 geocode call, got %d", geo.calls)
	}
	if !est.Ativo {
		t.Fatalf("expected new establishment active")
	}
}

func TestEstablishmentService_SaveForAdmin_Create_MissingRequired_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	_, err := svc.SaveForAdmin(context.Background(), 3, TipoClinica, SaveInput{
		Nome: "Sem Endereço",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestEstablishmentService_SaveForAdmin_Create_UnknownTipo_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	_, err := svc.SaveForAdmin(context.Background(), 3, "hospital", SaveInput{
		Nome:                 "X",
		EnderecoCompleto:     "Rua A, 1",
		Telefone:             "(17) 3421-1234",
		HorarioFuncionamento: "8h-18h",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestEstablishmentService_SaveForAdmin_GeocodeFailure_DoesNotBlock(t *testing.T) {
	db := newTestDB(t)
	geo := &stubGeocoder{err: errors.New("quota exceeded")}
	svc := &Service{DB: db, Geo: geo}

	est, err := svc.SaveForAdmin(context.Background(), 3, TipoClinica, SaveInput{
		Nome:                 "Clínica Sem Posição",
		EnderecoCompleto:     "Rua B, 2",
		Telefone:             "(17) 3421-1234",
		HorarioFuncionamento: "8h-18h",
	})
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if est.Latitude != nil || est.Longitude != nil {
		t.Fatalf("expected unset coordinates, got %#v/%#v", est.Latitude, est.Longitude)
	}
}

func TestEstablishmentService_SaveForAdmin_PartialUpdate_KeepsUnsetFields(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seeded := seedEstablishment(t, db, 5, true)

	updated, err := svc.SaveForAdmin(context.Background(), 5, TipoClinica, SaveInput{
		Descricao: "Atendimento humanizado",
	})
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if updated.ID != seeded.ID {
		t.Fatalf("expected update of existing row, got id %d", updated.ID)
	}
	if updated.Descricao != "Atendimento humanizado" {
		t.Fatalf("expected updated descricao, got %q", updated.Descricao)
	}
	if updated.Nome != seeded.Nome || updated.Telefone != seeded.Telefone {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestEstablishmentService_SaveForAdmin_AddressChange_TriggersGeocode(t *testing.T) {
	db := newTestDB(t)
	geo := &stubGeocoder{lat: -20.40, lng: -49.95}
	svc := &Service{DB: db, Geo: geo}
	seedEstablishment(t, db, 5, true)

	// Same address: no geocoding.
	_, err := svc.SaveForAdmin(context.Background(), 5, TipoClinica, SaveInput{
		EnderecoCompleto: "Rua das Flores, 100, Votuporanga - SP",
	})
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if geo.calls != 0 {
		t.Fatalf("expected no geocode call for unchanged address, got %d", geo.calls)
	}

	// New address: exactly one call, coordinates stored.
	updated, err := svc.SaveForAdmin(context.Background(), 5, TipoClinica, SaveInput{
		EnderecoCompleto: "Av. Brasil, 999, Votuporanga - SP",
	})
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if geo.calls != 1 {
		t.Fatalf("expected 1 geocode call, got %d", geo.calls)
	}
	if updated.Latitude == nil || *updated.Latitude != -20.40 {
		t.Fatalf("expected geocoded latitude, got %#v", updated.Latitude)
	}
}

func TestEstablishmentService_SaveForAdmin_InvalidCNPJ_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	_, err := svc.SaveForAdmin(context.Background(), 3, TipoClinica, SaveInput{
		Nome:                 "X",
		CNPJ:                 "12345678000100",
		EnderecoCompleto:     "Rua A, 1",
		Telefone:             "(17) 3421-1234",
		HorarioFuncionamento: "8h-18h",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestEstablishmentService_DeactivateByAdmin_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seeded := seedEstablishment(t, db, 9, true)

	if err := svc.DeactivateByAdmin(context.Background(), 9); err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}

	// Gone from the admin's active view...
	if _, err := svc.ActiveByAdmin(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deactivation, got: %v", err)
	}

	// ...but the row survives and stays reachable by id.
	got, err := svc.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if got.Ativo {
		t.Fatalf("expected ativo false, got %+v", got)
	}
}

func TestEstablishmentService_DeactivateByAdmin_NoActive_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	err := svc.DeactivateByAdmin(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestEstablishmentService_AddReview_InvalidRating(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}
	seeded := seedEstablishment(t, db, 1, true)

	for _, nota := range []int{0, 6, -1} {
		err := svc.AddReview(context.Background(), seeded.ID, ReviewInput{Usuario: "P", Nota: nota})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("nota %d: expected ErrInvalidRating, got: %v", nota, err)
		}
	}

	err := svc.AddReview(context.Background(), seeded.ID, ReviewInput{Usuario: "  ", Nota: 3})
	if !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for blank user, got: %v", err)
	}
}

func TestEstablishmentService_AddReview_UnknownEstablishment(t *testing.T) {
	db := newTestDB(t)
	svc := &Service{DB: db}

	err := svc.AddReview(context.Background(), 999, ReviewInput{Usuario: "P", Nota: 4})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
