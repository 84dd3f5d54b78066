package server

import (
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/logger"

	"gorm.io/gorm"
)

const defaultAdminPassword = "admin123"

// Seed creates the default privileges, roles and superuser when missing.
// It is safe to run on every start.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	log := logger.GetLogger()
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		return err
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		return err
	}
	allPrivileges, err := privilegeRepo.FindAll()
	if err != nil {
		return err
	}
	if err := roleRepo.AssignPrivileges(allPrivileges); err != nil {
		return err
	}

	if _, err := userRepo.FindByEmail(adminEmail); err == nil {
		return nil
	}

	superuser, err := roleRepo.FindByCode(model.RoleSuperuser)
	if err != nil {
		return err
	}
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
		log.Warn("ADMIN_PASSWORD not set, seeding the default admin password")
	}

	admin := &model.User{
		Email:      adminEmail,
		FullName:   "Administrator",
		RoleID:     &superuser.ID,
		IsActive:   true,
		Privileges: superuser.Privileges,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.WithField("email", adminEmail).Info("Admin user created")
	return nil
}
