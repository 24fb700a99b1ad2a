// Package models defines the data types shared between the settings store,
// the icon catalog and the tray core.
package models
