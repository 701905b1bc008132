package focus

import "github.com/ironsheep/image-focus/raster"

// SobelX responds to horizontal changes in brightness (vertical edges).
var SobelX = raster.Kernel{
	Matrix: [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	},
	Scale: 2,
}

// SobelY responds to vertical changes in brightness (horizontal edges).
var SobelY = raster.Kernel{
	Matrix: [3][3]float64{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	},
	Scale: 2,
}
