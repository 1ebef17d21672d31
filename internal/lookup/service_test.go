package lookup

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	dial := postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return gdb, mock, sqlDB
}

func stringRows(col string, values ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{col})
	for _, v := range values {
		rows.AddRow(v)
	}
	return rows
}

func TestLookupService_DistinctSpecialties_FlattensAndSorts(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`(?is)select distinct unnest\(especialidades\).+from medicos where ativo = true`).
		WillReturnRows(stringRows("especialidade", "Pediatria", "Cardiologia", "Ortopedia"))

	svc := NewService(db)
	got, err := svc.DistinctSpecialties(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	want := []string{"Cardiologia", "Ortopedia", "Pediatria"}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted %#v, got %#v", want, got)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookupService_DistinctInsurances_UnionsBothSources(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`(?is)unnest\(convenios_gerais\).+from estabelecimentos where ativo = true.+union.+unnest\(convenios_aceitos\).+from medicos where ativo = true`).
		WillReturnRows(stringRows("convenio", "Unimed", "Amil"))

	svc := NewService(db)
	got, err := svc.DistinctInsurances(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if len(got) != 2 || got[0] != "Amil" || got[1] != "Unimed" {
		t.Fatalf("expected sorted [Amil Unimed], got %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookupService_DistinctTypes(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`(?i)select distinct tipo from estabelecimentos where ativo = true`).
		WillReturnRows(stringRows("tipo", "clinica", "orgao_publico"))

	svc := NewService(db)
	got, err := svc.DistinctTypes(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLookupService_DistinctSpecialties_Empty(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`(?is)select distinct unnest\(especialidades\)`).
		WillReturnRows(stringRows("especialidade"))

	svc := NewService(db)
	got, err := svc.DistinctSpecialties(context.Background())
	if err != nil {
		t.Fatalf("expected nil err, got: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no values, got %#v", got)
	}
}

func TestLookupService_QueryError_Propagates(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`(?i)select distinct tipo`).WillReturnError(boom)

	svc := NewService(db)
	_, err := svc.DistinctTypes(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected underlying query error, got: %v", err)
	}
}
