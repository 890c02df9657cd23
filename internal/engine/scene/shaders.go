package scene

// planetVertexShader transforms chunk vertices, which are already relative
// to the render origin.
const planetVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uViewProj;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// planetFragmentShader lights the grid texture with one directional light.
const planetFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uGrid;
uniform vec3 uLightDir;
uniform vec3 uAmbient;

out vec4 FragColor;

void main() {
    vec3 albedo = texture(uGrid, vTexCoord).rgb;
    float diffuse = max(dot(normalize(vNormal), normalize(uLightDir)), 0.0);
    FragColor = vec4(albedo * (uAmbient + (1.0 - uAmbient) * diffuse), 1.0);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uViewProj;

void main() {
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
`
