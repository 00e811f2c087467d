package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-station-api/models"
)

func TestTrainCapacity(t *testing.T) {
	t.Run("should multiply cargo count by seats per cargo", func(t *testing.T) {
		train := models.Train{CargoNum: 2, Seats: 3}

		capacity, err := train.Capacity()
		require.NoError(t, err)

		assert.Equal(t, 6, capacity)
	})

	t.Run("should report invalid configuration for non-positive fields", func(t *testing.T) {
		tests := map[string]models.Train{
			"zero cargo_num":     {ID: 7, CargoNum: 0, Seats: 10},
			"zero seats":         {ID: 7, CargoNum: 10, Seats: 0},
			"negative cargo_num": {ID: 7, CargoNum: -1, Seats: 10},
			"negative seats":     {ID: 7, CargoNum: 10, Seats: -5},
		}

		for name, train := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := train.Capacity()
				require.Error(t, err)

				var invalid *models.InvalidConfigurationError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, 7, invalid.TrainID)
			})
		}
	})
}
