// Package testutil generates realistic users for tests and demo data.
package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// DataGenerator creates fake users from a seeded faker.
type DataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewDataGenerator creates a generator. Without a seed, the current time is used.
func NewDataGenerator(seed ...int64) *DataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &DataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *DataGenerator) Seed() int64 {
	return g.seed
}

// fieldMakers build one well-formed field each; names are distinct.
var fieldMakers = []func(*gofakeit.Faker) entities.ProfileField{
	func(f *gofakeit.Faker) entities.ProfileField {
		return entities.NewTextField("Hobby", f.Hobby())
	},
	func(f *gofakeit.Faker) entities.ProfileField {
		return entities.NewTextField("Job", f.JobTitle())
	},
	func(f *gofakeit.Faker) entities.ProfileField {
		return entities.NewNumberField("Age", float64(f.Number(18, 90)))
	},
	func(f *gofakeit.Faker) entities.ProfileField {
		return entities.NewNumberField("Height", float64(f.Number(1400, 2000))/10)
	},
	func(f *gofakeit.Faker) entities.ProfileField {
		gender := values.GenderMale
		if f.Bool() {
			gender = values.GenderFemale
		}
		return entities.NewGenderField("Sex", gender)
	},
}

// Fields returns up to n well-formed fields with distinct names.
func (g *DataGenerator) Fields(n int) []entities.ProfileField {
	if n > len(fieldMakers) {
		n = len(fieldMakers)
	}
	order := make([]int, len(fieldMakers))
	for i := range order {
		order[i] = i
	}
	g.faker.ShuffleInts(order)

	fields := make([]entities.ProfileField, 0, n)
	for _, i := range order[:n] {
		fields = append(fields, fieldMakers[i](g.faker))
	}
	return fields
}

// User returns a user without ID or timestamps, carrying 0 to 3 fields.
func (g *DataGenerator) User() entities.User {
	return entities.User{
		Name:          g.faker.Name(),
		Email:         g.faker.Email(),
		ProfileFields: g.Fields(g.faker.Number(0, 3)),
	}
}

// Users returns count users.
func (g *DataGenerator) Users(count int) []entities.User {
	users := make([]entities.User, count)
	for i := range users {
		users[i] = g.User()
	}
	return users
}
