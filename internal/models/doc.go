// package models defines the data types shared by the seeder, the
// account repository, and the CLI.
package models
