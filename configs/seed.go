package configs

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
)

// SeedAdmin creates the admin account once, from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

type seedComponent struct {
	Category string
	Name     string
	Price    int64
	Brand    string
	Socket   string
}

var seedComponents = []seedComponent{
	{entity.CategoryProcessor, "Intel Core i3-13100", 15000, "Intel", "LGA 1700"},
	{entity.CategoryProcessor, "AMD Ryzen 5 7600X", 40000, "AMD", "Socket AM5"},
	{entity.CategoryProcessor, "Intel Core i5-13600K", 50000, "Intel", "LGA 1700"},
	{entity.CategoryVideoCard, "GIGABYTE GeForce GTX 1660 SUPER", 25000, "GIGABYTE", ""},
	{entity.CategoryVideoCard, "MSI GeForce RTX 3050 VENTUS 2X", 35000, "MSI", ""},
	{entity.CategoryVideoCard, "MSI GeForce RTX 4060 Ti TUF GAMING", 70000, "MSI", ""},
	{entity.CategoryMemory, "8GB HyperX Fury DDR4", 6000, "HyperX", ""},
	{entity.CategoryMemory, "16GB Corsair Vengeance LPX DDR4", 10000, "Corsair", ""},
	{entity.CategoryMemory, "32GB Kingston Fury Beast RGB", 20000, "Kingston", ""},
	{entity.CategoryCase, "Cooler Master MasterBox Q300L", 8000, "Cooler Master", ""},
	{entity.CategoryCase, "Phanteks Eclipse P400A", 12000, "Phanteks", ""},
	{entity.CategoryCase, "NZXT H7 Elite", 15000, "NZXT", ""},
	{entity.CategoryPowerSupply, "Cooler Master MWE Gold 650W", 7500, "Cooler Master", ""},
	{entity.CategoryPowerSupply, "XPG Core Reactor 750W", 9500, "XPG", ""},
	{entity.CategoryPowerSupply, "Corsair RM750x", 8500, "Corsair", ""},
	{entity.CategoryCooling, "be quiet! Pure Rock 2", 5000, "be quiet!", ""},
	{entity.CategoryCooling, "Arctic Freezer 34 eSports", 6000, "Arctic", ""},
	{entity.CategoryCooling, "Cooler Master Hyper 212 Black Edition", 4000, "Cooler Master", ""},
	{entity.CategoryStorage, "Seagate BarraCuda 2TB HDD", 5000, "Seagate", ""},
	{entity.CategoryStorage, "ADATA XPG SX8200 Pro 512GB SSD", 7000, "ADATA", ""},
	{entity.CategoryStorage, "Western Digital Blue 500GB SSD", 6000, "WD", ""},
	{entity.CategoryMotherboard, "ASUS TUF Gaming B450-PLUS", 15000, "ASUS", "Socket AM4"},
	{entity.CategoryMotherboard, "Gigabyte AORUS B550 Elite", 25000, "Gigabyte", "Socket AM4"},
	{entity.CategoryMotherboard, "MSI MAG B660M Mortar WiFi DDR4", 20000, "MSI", "LGA 1700"},
}

type seedBuild struct {
	Name       string
	ImageURL   string
	TotalPrice int64
	Components []string // component names, one per category
}

var seedBuilds = []seedBuild{
	{"Budget Gaming", "budget_gaming.jpg", 86500, []string{
		"Intel Core i3-13100", "GIGABYTE GeForce GTX 1660 SUPER", "8GB HyperX Fury DDR4",
		"Cooler Master MasterBox Q300L", "Cooler Master MWE Gold 650W", "be quiet! Pure Rock 2",
		"Seagate BarraCuda 2TB HDD", "ASUS TUF Gaming B450-PLUS"}},
	{"Mid-Range Gaming", "mid_gaming.jpg", 144500, []string{
		"AMD Ryzen 5 7600X", "MSI GeForce RTX 3050 VENTUS 2X", "16GB Corsair Vengeance LPX DDR4",
		"Phanteks Eclipse P400A", "XPG Core Reactor 750W", "Arctic Freezer 34 eSports",
		"ADATA XPG SX8200 Pro 512GB SSD", "Gigabyte AORUS B550 Elite"}},
	{"Top Gaming", "top_gaming.jpg", 205500, []string{
		"Intel Core i5-13600K", "MSI GeForce RTX 4060 Ti TUF GAMING", "32GB Kingston Fury Beast RGB",
		"NZXT H7 Elite", "Corsair RM750x", "Cooler Master Hyper 212 Black Edition",
		"Western Digital Blue 500GB SSD", "MSI MAG B660M Mortar WiFi DDR4"}},
	{"AM5 Gaming", "am5_gaming.jpg", 220500, []string{
		"AMD Ryzen 5 7600X", "MSI GeForce RTX 4060 Ti TUF GAMING", "32GB Kingston Fury Beast RGB",
		"NZXT H7 Elite", "Corsair RM750x", "Arctic Freezer 34 eSports",
		"ADATA XPG SX8200 Pro 512GB SSD", "Gigabyte AORUS B550 Elite"}},
	{"Workstation", "workstation.jpg", 224000, []string{
		"Intel Core i5-13600K", "MSI GeForce RTX 3050 VENTUS 2X", "32GB Kingston Fury Beast RGB",
		"Phanteks Eclipse P400A", "XPG Core Reactor 750W", "Cooler Master Hyper 212 Black Edition",
		"Seagate BarraCuda 2TB HDD", "MSI MAG B660M Mortar WiFi DDR4"}},
	{"AM4 Classic", "am4_classic.jpg", 314000, []string{
		"Intel Core i3-13100", "GIGABYTE GeForce GTX 1660 SUPER", "16GB Corsair Vengeance LPX DDR4",
		"Cooler Master MasterBox Q300L", "Cooler Master MWE Gold 650W", "be quiet! Pure Rock 2",
		"Western Digital Blue 500GB SSD", "ASUS TUF Gaming B450-PLUS"}},
}

// SeedCatalog loads the component catalog and the predefined builds.
// Idempotent: rows are keyed by name.
func SeedCatalog(db *gorm.DB) error {
	componentIDs := make(map[string]uint, len(seedComponents))
	for _, sc := range seedComponents {
		var comp entity.Component
		err := db.Where(&entity.Component{Name: sc.Name}).
			Attrs(entity.Component{Category: sc.Category, Price: sc.Price, Brand: sc.Brand, Socket: sc.Socket}).
			FirstOrCreate(&comp).Error
		if err != nil {
			return err
		}
		componentIDs[sc.Name] = comp.ID
	}

	for _, sb := range seedBuilds {
		var build entity.Build
		err := db.Where(&entity.Build{Name: sb.Name}).
			Attrs(entity.Build{ImageURL: sb.ImageURL, TotalPrice: sb.TotalPrice, IsPredefined: true}).
			FirstOrCreate(&build).Error
		if err != nil {
			return err
		}
		for _, name := range sb.Components {
			join := entity.BuildComponent{BuildID: build.ID, ComponentID: componentIDs[name]}
			if err := db.Where(&join).FirstOrCreate(&join).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
