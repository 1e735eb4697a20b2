package manifold

import "math"

// flatNormals returns per-vertex normals averaged from the faces incident
// on each vertex. MeshGL output carries no normals unless asked to.
func flatNormals(vertices []float32, indices []uint32) []float32 {
	normals := make([]float32, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]

		ax, ay, az := float64(vertices[i0*3]), float64(vertices[i0*3+1]), float64(vertices[i0*3+2])
		bx, by, bz := float64(vertices[i1*3]), float64(vertices[i1*3+1]), float64(vertices[i1*3+2])
		cx, cy, cz := float64(vertices[i2*3]), float64(vertices[i2*3+1]), float64(vertices[i2*3+2])

		e1x, e1y, e1z := bx-ax, by-ay, bz-az
		e2x, e2y, e2z := cx-ax, cy-ay, cz-az

		// Unnormalized, so larger faces weigh more.
		nx := float32(e1y*e2z - e1z*e2y)
		ny := float32(e1z*e2x - e1x*e2z)
		nz := float32(e1x*e2y - e1y*e2x)

		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3+0] += nx
			normals[idx*3+1] += ny
			normals[idx*3+2] += nz
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		nx, ny, nz := float64(normals[i]), float64(normals[i+1]), float64(normals[i+2])
		if l := math.Sqrt(nx*nx + ny*ny + nz*nz); l > 1e-12 {
			normals[i] = float32(nx / l)
			normals[i+1] = float32(ny / l)
			normals[i+2] = float32(nz / l)
		}
	}
	return normals
}
