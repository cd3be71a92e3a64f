package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the schema in foreign key dependency order.
var Tables = []struct {
	Name string
	DDL  string
}{
	{"Users", `
	CREATE TABLE IF NOT EXISTS Users (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		passwordHash VARCHAR(255) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`},
	{"UserGroups", `
	CREATE TABLE IF NOT EXISTS UserGroups (
		userId INT NOT NULL,
		groupName VARCHAR(32) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (userId, groupName),
		FOREIGN KEY (userId) REFERENCES Users(id) ON DELETE CASCADE,
		INDEX idx_group (groupName)
	)`},
	{"AuthTokens", `
	CREATE TABLE IF NOT EXISTS AuthTokens (
		tokenHash CHAR(64) NOT NULL PRIMARY KEY,
		userId INT NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (userId) REFERENCES Users(id) ON DELETE CASCADE
	)`},
	{"Categories", `
	CREATE TABLE IF NOT EXISTS Categories (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		slug VARCHAR(100) NOT NULL UNIQUE,
		title VARCHAR(255) NOT NULL
	)`},
	{"MenuItems", `
	CREATE TABLE IF NOT EXISTS MenuItems (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DECIMAL(8,2) NOT NULL,
		featured TINYINT(1) NOT NULL DEFAULT 0,
		categoryId INT NOT NULL,
		FOREIGN KEY (categoryId) REFERENCES Categories(id),
		INDEX idx_title (title)
	)`},
	{"Cart", `
	CREATE TABLE IF NOT EXISTS Cart (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		menuItemId INT NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(8,2) NOT NULL,
		UNIQUE KEY uq_user_menu_item (userId, menuItemId),
		FOREIGN KEY (userId) REFERENCES Users(id) ON DELETE CASCADE,
		FOREIGN KEY (menuItemId) REFERENCES MenuItems(id) ON DELETE CASCADE
	)`},
	{"Orders", `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		deliveryCrewId INT NULL,
		status TINYINT NOT NULL DEFAULT 0,
		total DECIMAL(14,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (userId) REFERENCES Users(id) ON DELETE CASCADE,
		FOREIGN KEY (deliveryCrewId) REFERENCES Users(id) ON DELETE SET NULL,
		INDEX idx_user (userId),
		INDEX idx_delivery_crew (deliveryCrewId)
	)`},
	{"OrderItems", `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		menuItemId INT NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(8,2) NOT NULL,
		UNIQUE KEY uq_order_menu_item (orderId, menuItemId),
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		FOREIGN KEY (menuItemId) REFERENCES MenuItems(id) ON DELETE RESTRICT
	)`},
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, tbl := range Tables {
		if _, err := db.ExecContext(ctx, tbl.DDL); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.Name, err)
		}
	}
	return nil
}
