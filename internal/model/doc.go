// Package model defines the core data types shared across components.
package model
