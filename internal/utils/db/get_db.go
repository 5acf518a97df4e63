package db

import (
	"os"
	"strconv"

	"gorm.io/gorm"
)

func GetDB() (*gorm.DB, error) {
	db_host := os.Getenv("DB_HOST")
	db_host_port := os.Getenv("DB_PORT")
	port, err := strconv.ParseUint(db_host_port, 10, 32)
	if err != nil {
		port = 5432 // Default PostgreSQL port
	}

	db_user := os.Getenv("DB_USER")
	db_password := os.Getenv("DB_PASSWORD")
	db_name := os.Getenv("DB_NAME")
	return ConnectDataBase(uint(port), db_host, db_user, db_password, db_name)
}

// TemUnaccent sonda uma única vez, na subida do processo, se a extensão
// unaccent está disponível. O resultado é passado adiante via configuração
// em vez de cache preguiçoso por requisição.
func TemUnaccent(database *gorm.DB) bool {
	var n int64
	err := database.Raw("SELECT count(*) FROM pg_extension WHERE extname = 'unaccent'").Scan(&n).Error
	return err == nil && n > 0
}
