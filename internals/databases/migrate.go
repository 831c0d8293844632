// file: internals/databases/migrate.go
package database

import (
	"log"

	certModel "prestasiku_backend/internals/features/certificates/certificate/model"
	dictModel "prestasiku_backend/internals/features/dictionaries/dictionary/model"
	apiKeyModel "prestasiku_backend/internals/features/extraction/apikey/model"
	fileModel "prestasiku_backend/internals/features/files/file/model"
	configModel "prestasiku_backend/internals/features/system/config/model"
	userModel "prestasiku_backend/internals/features/users/user/model"
)

// Migrate keeps the schema current on startup.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&configModel.SystemConfigModel{},
		&dictModel.DictionaryCategoryModel{},
		&dictModel.DictionaryOptionModel{},
		&fileModel.FileModel{},
		&apiKeyModel.APIKeyModel{},
		&certModel.CertificateModel{},
	)
	if err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ schema migrated.")
}
